package public

const (
	DefaultListenHost = "0.0.0.0"
	DefaultListenPort = 6379

	// DefaultShardCount is the number of lock stripes of a sharded backend.
	DefaultShardCount = 16

	// InfoTemplate is the INFO status line; it takes the key count and the
	// plural suffix.
	InfoTemplate = "We've got %d key%s right now, thanks for asking :)"
)

const (
	// WatchBufferSize is the capacity of every watcher channel
	WatchBufferSize = 128
)
