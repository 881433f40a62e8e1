// Package command defines every request a caller can send to a backend.
//
// Commands are plain data: each variant carries only the arguments its
// operation needs and reports its canonical name. Executing them is the
// backend's job.
package command

import "github.com/Kirov7/kraglin/data"

// Command is one request. The set of variants is closed.
type Command interface {
	// Name returns the canonical command name used on the wire, e.g. "HSET".
	Name() string
	isCommand()
}

// Set stores Value under Key, replacing any previous content.
type Set struct {
	Key   string
	Value data.Value
}

// Get reads Key.
type Get struct {
	Key string
}

// MultipleGet reads every key in Keys, in order.
type MultipleGet struct {
	Keys []string
}

// Increment adds one to an integer-like value stored under Key.
type Increment struct {
	Key string
}

// Keys lists all keys.
type Keys struct{}

// Exists checks whether Key is present.
type Exists struct {
	Key string
}

// Delete removes Key.
type Delete struct {
	Key string
}

// Info reports server status.
type Info struct{}

// HashSet sets Field of the hash stored under Key.
type HashSet struct {
	Key   string
	Field string
	Value data.Value
}

// HashGet reads Field of the hash stored under Key.
type HashGet struct {
	Key   string
	Field string
}

// HashGetAll reads the whole hash stored under Key.
type HashGetAll struct {
	Key string
}

// HashMultipleGet reads several fields of the hash stored under Key.
type HashMultipleGet struct {
	Key    string
	Fields []string
}

// SetAdd adds Value to the set stored under Key.
type SetAdd struct {
	Key   string
	Value data.Value
}

// SetMembers reads every member of the set stored under Key.
type SetMembers struct {
	Key string
}

// SetCardinality counts the members of the set stored under Key.
type SetCardinality struct {
	Key string
}

// SetIsMember checks whether Value is a member of the set stored under Key.
type SetIsMember struct {
	Key   string
	Value data.Value
}

// SetDifference computes SetA minus SetB.
type SetDifference struct {
	SetA string
	SetB string
}

// SetDifferenceStore computes SetA minus SetB and stores it under NewSet.
type SetDifferenceStore struct {
	SetA   string
	SetB   string
	NewSet string
}

// SetRemove removes Value from the set stored under Key.
type SetRemove struct {
	Key   string
	Value data.Value
}

// LeftPush prepends Value to the list stored under Key.
type LeftPush struct {
	Key   string
	Value data.Value
}

// RightPush appends Value to the list stored under Key.
type RightPush struct {
	Key   string
	Value data.Value
}

// ListRange reads the inclusive range [Start, End] of the list stored under
// Key. Negative indices count from the end.
type ListRange struct {
	Key   string
	Start int64
	End   int64
}

// ListLength counts the elements of the list stored under Key.
type ListLength struct {
	Key string
}

// LeftPop removes and returns the head of the list stored under Key.
type LeftPop struct {
	Key string
}

// RightPop removes and returns the tail of the list stored under Key.
type RightPop struct {
	Key string
}

func (Set) Name() string                { return "SET" }
func (Get) Name() string                { return "GET" }
func (MultipleGet) Name() string        { return "MGET" }
func (Increment) Name() string          { return "INCR" }
func (Keys) Name() string               { return "KEYS" }
func (Exists) Name() string             { return "EXISTS" }
func (Delete) Name() string             { return "DEL" }
func (Info) Name() string               { return "INFO" }
func (HashSet) Name() string            { return "HSET" }
func (HashGet) Name() string            { return "HGET" }
func (HashGetAll) Name() string         { return "HGETALL" }
func (HashMultipleGet) Name() string    { return "HMGET" }
func (SetAdd) Name() string             { return "SADD" }
func (SetMembers) Name() string         { return "SMEMBERS" }
func (SetCardinality) Name() string     { return "SCARD" }
func (SetIsMember) Name() string        { return "SISMEMBER" }
func (SetDifference) Name() string      { return "SDIFF" }
func (SetDifferenceStore) Name() string { return "SDIFFSTORE" }
func (SetRemove) Name() string          { return "SREM" }
func (LeftPush) Name() string           { return "LPUSH" }
func (RightPush) Name() string          { return "RPUSH" }
func (ListRange) Name() string          { return "LRANGE" }
func (ListLength) Name() string         { return "LLEN" }
func (LeftPop) Name() string            { return "LPOP" }
func (RightPop) Name() string           { return "RPOP" }

func (Set) isCommand()                {}
func (Get) isCommand()                {}
func (MultipleGet) isCommand()        {}
func (Increment) isCommand()          {}
func (Keys) isCommand()               {}
func (Exists) isCommand()             {}
func (Delete) isCommand()             {}
func (Info) isCommand()               {}
func (HashSet) isCommand()            {}
func (HashGet) isCommand()            {}
func (HashGetAll) isCommand()         {}
func (HashMultipleGet) isCommand()    {}
func (SetAdd) isCommand()             {}
func (SetMembers) isCommand()         {}
func (SetCardinality) isCommand()     {}
func (SetIsMember) isCommand()        {}
func (SetDifference) isCommand()      {}
func (SetDifferenceStore) isCommand() {}
func (SetRemove) isCommand()          {}
func (LeftPush) isCommand()           {}
func (RightPush) isCommand()          {}
func (ListRange) isCommand()          {}
func (ListLength) isCommand()         {}
func (LeftPop) isCommand()            {}
func (RightPop) isCommand()           {}

// Names lists every canonical command name.
var Names = []string{
	"SET", "GET", "MGET", "INCR", "KEYS", "EXISTS", "DEL", "INFO",
	"HSET", "HGET", "HGETALL", "HMGET",
	"SADD", "SMEMBERS", "SCARD", "SISMEMBER", "SDIFF", "SDIFFSTORE", "SREM",
	"LPUSH", "RPUSH", "LRANGE", "LLEN", "LPOP", "RPOP",
}
