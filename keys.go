package kraglin

import "github.com/Kirov7/kraglin/command"

// touchedKeys returns every key cmd reads or writes. all is true for commands
// that look at the whole keyspace.
func touchedKeys(cmd command.Command) (keys []string, all bool) {
	switch c := cmd.(type) {
	case command.Keys, command.Info:
		return nil, true
	case command.MultipleGet:
		return c.Keys, false
	case command.SetDifference:
		return []string{c.SetA, c.SetB}, false
	case command.SetDifferenceStore:
		return []string{c.SetA, c.SetB, c.NewSet}, false
	}
	if key, ok := singleKey(cmd); ok {
		return []string{key}, false
	}
	return nil, false
}

// writtenKeys returns the keys cmd may modify. Read-only commands return nil.
func writtenKeys(cmd command.Command) []string {
	switch c := cmd.(type) {
	case command.Set:
		return []string{c.Key}
	case command.Increment:
		return []string{c.Key}
	case command.Delete:
		return []string{c.Key}
	case command.HashSet:
		return []string{c.Key}
	case command.SetAdd:
		return []string{c.Key}
	case command.SetDifferenceStore:
		return []string{c.NewSet}
	case command.SetRemove:
		return []string{c.Key}
	case command.LeftPush:
		return []string{c.Key}
	case command.RightPush:
		return []string{c.Key}
	case command.LeftPop:
		return []string{c.Key}
	case command.RightPop:
		return []string{c.Key}
	}
	return nil
}

func singleKey(cmd command.Command) (string, bool) {
	switch c := cmd.(type) {
	case command.Set:
		return c.Key, true
	case command.Get:
		return c.Key, true
	case command.Increment:
		return c.Key, true
	case command.Exists:
		return c.Key, true
	case command.Delete:
		return c.Key, true
	case command.HashSet:
		return c.Key, true
	case command.HashGet:
		return c.Key, true
	case command.HashGetAll:
		return c.Key, true
	case command.HashMultipleGet:
		return c.Key, true
	case command.SetAdd:
		return c.Key, true
	case command.SetMembers:
		return c.Key, true
	case command.SetCardinality:
		return c.Key, true
	case command.SetIsMember:
		return c.Key, true
	case command.SetRemove:
		return c.Key, true
	case command.LeftPush:
		return c.Key, true
	case command.RightPush:
		return c.Key, true
	case command.ListRange:
		return c.Key, true
	case command.ListLength:
		return c.Key, true
	case command.LeftPop:
		return c.Key, true
	case command.RightPop:
		return c.Key, true
	}
	return "", false
}
