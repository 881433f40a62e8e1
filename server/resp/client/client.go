// Package client is a pipelined RESP2 client.
package client

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/Kirov7/kraglin/public/logger"
	"github.com/Kirov7/kraglin/server/resp/parser"
	"github.com/Kirov7/kraglin/server/resp/reply"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

var (
	ErrClientClosed = errors.New("client closed")
	ErrTimeout      = errors.New("server time out")
)

// Client is a pipeline mode redis client
type Client struct {
	conn        net.Conn
	pendingReqs chan *request // wait to send
	waitingReqs chan *request // waiting response
	ticker      *time.Ticker
	addr        string
	logger      hclog.Logger

	mu       sync.RWMutex
	closed   bool
	readDone chan struct{}
	stopped  chan struct{}

	working *sync.WaitGroup // its counter presents unfinished requests(pending and waiting)
}

// request is a message sends to redis server
type request struct {
	args      [][]byte
	reply     reply.Reply
	heartbeat bool
	done      chan struct{}
	err       error
}

func (r *request) finish(rep reply.Reply, err error) {
	r.reply, r.err = rep, err
	close(r.done)
}

const (
	chanSize          = 256
	maxWait           = 3 * time.Second
	heartbeatInterval = 10 * time.Second
)

// MakeClient dials addr. Call Start before sending.
func MakeClient(addr string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, maxWait)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", addr)
	}
	return &Client{
		addr:        addr,
		conn:        conn,
		logger:      logger.Default().Named("client"),
		pendingReqs: make(chan *request, chanSize),
		waitingReqs: make(chan *request, chanSize),
		readDone:    make(chan struct{}),
		stopped:     make(chan struct{}),
		working:     &sync.WaitGroup{},
	}, nil
}

// Start starts asynchronous goroutines
func (client *Client) Start() {
	client.ticker = time.NewTicker(heartbeatInterval)
	go client.handleWrite()
	go client.handleRead()
	go client.heartbeat()
}

// Close stops asynchronous goroutines and close connection
func (client *Client) Close() {
	client.mu.Lock()
	if client.closed {
		client.mu.Unlock()
		return
	}
	client.closed = true
	if client.ticker != nil {
		client.ticker.Stop()
	}
	// stop new request
	close(client.pendingReqs)
	client.mu.Unlock()

	// wait stop process
	client.working.Wait()

	// clean
	_ = client.conn.Close()
	close(client.stopped)
}

// Addr returns the server address.
func (client *Client) Addr() string {
	return client.addr
}

func (client *Client) heartbeat() {
	for {
		select {
		case <-client.ticker.C:
			_, _ = client.send(context.Background(), [][]byte{[]byte("PING")}, true)
		case <-client.stopped:
			return
		}
	}
}

func (client *Client) handleWrite() {
	for req := range client.pendingReqs {
		client.doRequest(req)
	}
}

// Send sends a request to redis server. Failures come back as error replies.
func (client *Client) Send(args [][]byte) reply.Reply {
	r, err := client.SendContext(context.Background(), args)
	if err != nil {
		return reply.MakeErrReply(err.Error())
	}
	return r
}

// SendContext sends a request and waits for its reply until ctx is done or
// the server takes too long.
func (client *Client) SendContext(ctx context.Context, args [][]byte) (reply.Reply, error) {
	return client.send(ctx, args, false)
}

func (client *Client) send(ctx context.Context, args [][]byte, heartbeat bool) (reply.Reply, error) {
	req := &request{
		args:      args,
		heartbeat: heartbeat,
		done:      make(chan struct{}),
	}

	client.mu.RLock()
	if client.closed {
		client.mu.RUnlock()
		return nil, ErrClientClosed
	}
	client.working.Add(1)
	defer client.working.Done()
	client.pendingReqs <- req
	client.mu.RUnlock()

	timer := time.NewTimer(maxWait)
	defer timer.Stop()
	select {
	case <-req.done:
		if req.err != nil {
			return nil, errors.Wrap(req.err, "request failed")
		}
		return req.reply, nil
	case <-timer.C:
		return nil, ErrTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (client *Client) doRequest(req *request) {
	if req == nil || len(req.args) == 0 {
		return
	}
	select {
	case <-client.readDone:
		req.finish(nil, ErrClientClosed)
		return
	default:
	}

	re := reply.MakeMultiBulkReply(req.args)
	if _, err := client.conn.Write(re.ToBytes()); err != nil {
		req.finish(nil, err)
		return
	}
	select {
	case client.waitingReqs <- req:
	case <-client.readDone:
		req.finish(nil, ErrClientClosed)
	}
}

func (client *Client) finishRequest(rep reply.Reply) {
	select {
	case req := <-client.waitingReqs:
		req.finish(rep, nil)
	case <-client.stopped:
	}
}

func (client *Client) handleRead() {
	ch := parser.ParseStream(client.conn)
	for payload := range ch {
		if payload.Err != nil {
			client.logger.Debug("connection lost", "addr", client.addr, "err", payload.Err)
			break
		}
		client.finishRequest(payload.Data)
	}
	for range ch {
	}
	close(client.readDone)

	// nothing more will be answered
	for {
		select {
		case req := <-client.waitingReqs:
			req.finish(nil, ErrClientClosed)
		case <-client.stopped:
			return
		}
	}
}
