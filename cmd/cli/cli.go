package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/Kirov7/kraglin/cmd/root"
	"github.com/Kirov7/kraglin/data"
	"github.com/Kirov7/kraglin/public"
	"github.com/Kirov7/kraglin/server/resp/client"
	"github.com/Kirov7/kraglin/server/resp/reply"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	host    string
	port    int
	timeout time.Duration
)

var cliCmd = &cobra.Command{
	Use:   "cli [command [args...]]",
	Short: "Send commands to a kraglin server",
	Long:  `Run one command given as arguments, or read one command per line from stdin when none is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := net.JoinHostPort(host, strconv.Itoa(port))
		ctx := context.Background()
		p := client.NewPool(ctx, addr, 1)
		defer p.Close(ctx)

		if len(args) > 0 {
			return runOne(ctx, p, args, cmd.OutOrStdout())
		}
		return runLines(ctx, p, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

type executor interface {
	Exec(ctx context.Context, args [][]byte) (reply.Reply, error)
}

func runOne(ctx context.Context, e executor, args []string, out io.Writer) error {
	cmdLine := make([][]byte, len(args))
	for i, a := range args {
		cmdLine[i] = []byte(a)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	r, err := e.Exec(ctx, cmdLine)
	if err != nil {
		return errors.Wrap(err, "send command")
	}
	_, err = fmt.Fprintln(out, format(r))
	return err
}

func runLines(ctx context.Context, e executor, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if err := runOne(ctx, e, fields, out); err != nil {
			return err
		}
	}
	return sc.Err()
}

// format renders a reply the way redis-cli does.
func format(r reply.Reply) string {
	if reply.IsErrorReply(r) {
		return "(error) " + strings.TrimSuffix(strings.TrimPrefix(string(r.ToBytes()), "-"), "\r\n")
	}
	return data.Format(reply.ToValue(r))
}

func init() {
	cliCmd.Flags().StringVarP(&host, "host", "H", "127.0.0.1", "Server host")
	cliCmd.Flags().IntVarP(&port, "port", "p", public.DefaultListenPort, "Server port")
	cliCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Time to wait for each reply")

	root.AddCommand(cliCmd)
}
