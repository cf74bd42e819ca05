/*
Package utils provides the decorators wrapped around every message handler:
logging, panic recovery and savepoints.
*/
package utils
