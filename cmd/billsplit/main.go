// Command billsplit prints balances and the settlement plan of a saved bill.
//
// Usage:
//
//	billsplit report <file.json>
//	billsplit report -        # read the snapshot from stdin
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mmynk/billsplitter/internal/report"
	"github.com/mmynk/billsplitter/internal/storage"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "billsplit: %v\n", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage: billsplit report <file.json|->")

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("billsplit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 2 || fs.Arg(0) != "report" {
		return errUsage
	}

	data, err := readInput(fs.Arg(1), stdin)
	if err != nil {
		return err
	}

	bill, err := storage.DecodeBill(data)
	if err != nil {
		return err
	}
	if err := bill.Validate(); err != nil {
		return err
	}
	return report.Render(stdout, bill)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
