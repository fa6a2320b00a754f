package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/auraframes/genesis-bridge/bridge"
)

func main() {
	var (
		repeat      = flag.Int("n", 1, "Number of greeting invocations")
		list        = flag.Bool("list", false, "List exported symbols and exit")
		showSymbol  = flag.Bool("symbol", false, "Print the mangled export symbol and exit")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*repeat, *list, *showSymbol, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(repeat int, list, showSymbol, verbose bool) error {
	ctx := context.Background()

	logger := zap.NewNop()
	if verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer logger.Sync()
	}

	b, err := bridge.New(ctx, bridge.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create bridge: %w", err)
	}
	defer b.Close(ctx)

	if showSymbol {
		fmt.Println(b.Symbol())
		return nil
	}

	if list {
		for _, name := range b.Exports() {
			fmt.Println(name)
		}
		return nil
	}

	for i := 0; i < repeat; i++ {
		greeting, err := b.Greeting(ctx)
		if err != nil {
			return fmt.Errorf("call %d: %w", i+1, err)
		}
		fmt.Println(greeting)
	}

	return nil
}
