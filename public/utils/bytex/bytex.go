package bytex

import (
	"fmt"

	"github.com/Kirov7/kraglin/data"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GetTestKey(x int) string {
	return fmt.Sprintf("key-%09d", x)
}

func RandomBytes(length int) []byte {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return b
}

// RandomValue returns a random storable value of a random scalar kind.
func RandomValue() data.Value {
	switch rand.Intn(4) {
	case 0:
		return data.SimpleString(RandomBytes(8))
	case 1:
		return data.Integer(rand.Int63())
	case 2:
		return data.BulkString(RandomBytes(16))
	default:
		return data.Double(rand.Float64())
	}
}

func StringSort(keys []string) {
	slices.Sort(keys)
}
