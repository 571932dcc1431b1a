// Command pitwall ingests session archives from the timing feed into a local
// SQLite warehouse and inspects what has been stored.
package main
