/*
Package orm provides a simple object mapper on top of the key value store.

Models are protobuf messages stored under a bucket prefix. A bucket can
maintain secondary indexes that map a value computed from a model to all
primary keys of models sharing that value, and can generate sequential keys.
*/
package orm
