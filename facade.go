package kraglin

import (
	"context"

	"github.com/Kirov7/kraglin/command"
	"github.com/Kirov7/kraglin/data"
)

// Facade offers one method per command. Each builds the command and forwards
// it to the backend.
type Facade struct {
	backend Backend
}

func NewFacade(backend Backend) *Facade {
	return &Facade{backend: backend}
}

func (f *Facade) Backend() Backend {
	return f.backend
}

func (f *Facade) Set(ctx context.Context, key string, value data.Value) (data.Value, error) {
	return f.backend.Execute(ctx, command.Set{Key: key, Value: value})
}

func (f *Facade) Get(ctx context.Context, key string) (data.Value, error) {
	return f.backend.Execute(ctx, command.Get{Key: key})
}

func (f *Facade) MGet(ctx context.Context, keys ...string) (data.Value, error) {
	return f.backend.Execute(ctx, command.MultipleGet{Keys: keys})
}

func (f *Facade) Incr(ctx context.Context, key string) (data.Value, error) {
	return f.backend.Execute(ctx, command.Increment{Key: key})
}

func (f *Facade) Keys(ctx context.Context) (data.Value, error) {
	return f.backend.Execute(ctx, command.Keys{})
}

func (f *Facade) Exists(ctx context.Context, key string) (data.Value, error) {
	return f.backend.Execute(ctx, command.Exists{Key: key})
}

func (f *Facade) Del(ctx context.Context, key string) (data.Value, error) {
	return f.backend.Execute(ctx, command.Delete{Key: key})
}

func (f *Facade) Info(ctx context.Context) (data.Value, error) {
	return f.backend.Execute(ctx, command.Info{})
}

func (f *Facade) HSet(ctx context.Context, key, field string, value data.Value) (data.Value, error) {
	return f.backend.Execute(ctx, command.HashSet{Key: key, Field: field, Value: value})
}

func (f *Facade) HGet(ctx context.Context, key, field string) (data.Value, error) {
	return f.backend.Execute(ctx, command.HashGet{Key: key, Field: field})
}

func (f *Facade) HGetAll(ctx context.Context, key string) (data.Value, error) {
	return f.backend.Execute(ctx, command.HashGetAll{Key: key})
}

func (f *Facade) HMGet(ctx context.Context, key string, fields ...string) (data.Value, error) {
	return f.backend.Execute(ctx, command.HashMultipleGet{Key: key, Fields: fields})
}

func (f *Facade) SAdd(ctx context.Context, key string, value data.Value) (data.Value, error) {
	return f.backend.Execute(ctx, command.SetAdd{Key: key, Value: value})
}

func (f *Facade) SMembers(ctx context.Context, key string) (data.Value, error) {
	return f.backend.Execute(ctx, command.SetMembers{Key: key})
}

func (f *Facade) SCard(ctx context.Context, key string) (data.Value, error) {
	return f.backend.Execute(ctx, command.SetCardinality{Key: key})
}

func (f *Facade) SIsMember(ctx context.Context, key string, value data.Value) (data.Value, error) {
	return f.backend.Execute(ctx, command.SetIsMember{Key: key, Value: value})
}

func (f *Facade) SDiff(ctx context.Context, setA, setB string) (data.Value, error) {
	return f.backend.Execute(ctx, command.SetDifference{SetA: setA, SetB: setB})
}

func (f *Facade) SDiffStore(ctx context.Context, setA, setB, newSet string) (data.Value, error) {
	return f.backend.Execute(ctx, command.SetDifferenceStore{SetA: setA, SetB: setB, NewSet: newSet})
}

func (f *Facade) SRem(ctx context.Context, key string, value data.Value) (data.Value, error) {
	return f.backend.Execute(ctx, command.SetRemove{Key: key, Value: value})
}

func (f *Facade) LPush(ctx context.Context, key string, value data.Value) (data.Value, error) {
	return f.backend.Execute(ctx, command.LeftPush{Key: key, Value: value})
}

func (f *Facade) RPush(ctx context.Context, key string, value data.Value) (data.Value, error) {
	return f.backend.Execute(ctx, command.RightPush{Key: key, Value: value})
}

func (f *Facade) LRange(ctx context.Context, key string, start, end int64) (data.Value, error) {
	return f.backend.Execute(ctx, command.ListRange{Key: key, Start: start, End: end})
}

func (f *Facade) LLen(ctx context.Context, key string) (data.Value, error) {
	return f.backend.Execute(ctx, command.ListLength{Key: key})
}

func (f *Facade) LPop(ctx context.Context, key string) (data.Value, error) {
	return f.backend.Execute(ctx, command.LeftPop{Key: key})
}

func (f *Facade) RPop(ctx context.Context, key string) (data.Value, error) {
	return f.backend.Execute(ctx, command.RightPop{Key: key})
}
