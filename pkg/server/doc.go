// Package server provides the relay's TCP listener: it accepts mining
// clients, selects an upstream pool, dials it, and hands both sockets to
// a relay pair.
//
// A client accepted while no pool is configured receives a short textual
// refusal and is closed without any outbound dial. A failed dial to the
// selected pool closes the client immediately; the client's retry is the
// recovery path.
package server
