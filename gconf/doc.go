/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps its configuration as a single protobuf message stored
under the "_c:<package name>" key. Configuration is loaded from the genesis
"conf" section and validated before it is saved.
*/
package gconf
