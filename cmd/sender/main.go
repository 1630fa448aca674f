// Command sender pushes a file to a raw spooler, optionally ending the job
// with a TCP reset to reproduce a host dropping the connection.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"miniraw/client"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/samber/lo"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", "localhost:9100", "Spooler address")
	reset := flag.Bool("reset", false, "End the job with a TCP reset instead of a clean close")
	chunk := flag.Int("chunk", 32*1024, "Write size in bytes")
	pause := flag.Duration("pause", 0, "Pause between two writes")
	copies := flag.Int("copies", 1, "Number of jobs to send")
	timeout := flag.Duration("timeout", time.Minute, "Timeout per job")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: sender [flags] FILE|-\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 || *copies < 1 {
		flag.Usage()
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	payload, err := readSource(flag.Arg(0))
	if err != nil {
		color.Error.Println(err)
		return exitUsage
	}

	opts := client.Options{ChunkSize: *chunk, Pause: *pause, Reset: *reset}
	ending := lo.Ternary(opts.Reset, "reset", "clean close")
	code := exitOK
	for i := 1; i <= *copies; i++ {
		jobCtx, cancel := context.WithTimeout(ctx, *timeout)
		result, err := client.Send(jobCtx, *addr, bytes.NewReader(payload), opts)
		cancel()
		if err != nil {
			color.Error.Printf("job %d: %v (%d bytes sent)\n", i, err, result.Bytes)
			code = exitRuntime
			continue
		}
		color.Success.Printf("job %d: %d bytes sent to %s in %v, %s\n", i, result.Bytes, *addr, result.Duration.Round(time.Millisecond), ending)
	}
	return code
}

func readSource(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}
