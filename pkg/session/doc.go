/*
Package session hosts many independent pickers keyed by session ID.

Every session owns one machine and its point buffer. Deliveries to the same
session are serialized; different sessions proceed in parallel. Sessions live
in memory for the lifetime of the Manager.
*/
package session
