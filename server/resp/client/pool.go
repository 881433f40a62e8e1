package client

import (
	"context"

	"github.com/Kirov7/kraglin/server/resp/reply"
	pool "github.com/jolestar/go-commons-pool/v2"
	"github.com/pkg/errors"
)

type ConnectionFactory struct {
	Peer string
}

func (f *ConnectionFactory) MakeObject(ctx context.Context) (*pool.PooledObject, error) {
	c, err := MakeClient(f.Peer)
	if err != nil {
		return nil, err
	}
	c.Start()
	return pool.NewPooledObject(c), nil
}

func (f *ConnectionFactory) DestroyObject(ctx context.Context, object *pool.PooledObject) error {
	c, ok := object.Object.(*Client)
	if !ok {
		return errors.New("type mismatch")
	}
	c.Close()
	return nil
}

// ValidateObject pings the server.
func (f *ConnectionFactory) ValidateObject(ctx context.Context, object *pool.PooledObject) bool {
	c, ok := object.Object.(*Client)
	if !ok {
		return false
	}
	r, err := c.SendContext(ctx, [][]byte{[]byte("PING")})
	return err == nil && r != nil && !reply.IsErrorReply(r)
}

func (f *ConnectionFactory) ActivateObject(ctx context.Context, object *pool.PooledObject) error {
	// do activate
	return nil
}

func (f *ConnectionFactory) PassivateObject(ctx context.Context, object *pool.PooledObject) error {
	// do passivate
	return nil
}

// Pool hands out started clients for one server.
type Pool struct {
	objects *pool.ObjectPool
}

// NewPool keeps up to maxTotal connections to addr.
func NewPool(ctx context.Context, addr string, maxTotal int) *Pool {
	cfg := pool.NewDefaultPoolConfig()
	if maxTotal > 0 {
		cfg.MaxTotal = maxTotal
		cfg.MaxIdle = maxTotal
	}
	cfg.TestOnBorrow = true
	return &Pool{objects: pool.NewObjectPool(ctx, &ConnectionFactory{Peer: addr}, cfg)}
}

// Exec borrows a client, runs one command and gives the client back. A client
// whose request failed is dropped from the pool.
func (p *Pool) Exec(ctx context.Context, args [][]byte) (reply.Reply, error) {
	obj, err := p.objects.BorrowObject(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "borrow connection")
	}
	c := obj.(*Client)
	r, err := c.SendContext(ctx, args)
	if err != nil {
		_ = p.objects.InvalidateObject(ctx, c)
		return nil, err
	}
	if err := p.objects.ReturnObject(ctx, c); err != nil {
		return r, errors.Wrap(err, "return connection")
	}
	return r, nil
}

// Close destroys every idle client.
func (p *Pool) Close(ctx context.Context) {
	p.objects.Close(ctx)
}
