/*
Package sqldataset provides storage of datasets on SQL databases.

Samples are kept in a single samples table with one numeric column per
dataset column plus a serial id that preserves insertion order. Engine
differences are absorbed by the Adapter interface, implemented for
SQLite3 and PostgreSQL by the sqlite3adapter and pgadapter
subpackages.
*/
package sqldataset
