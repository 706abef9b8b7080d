// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/tochemey/stage/internal/codegen"
	"github.com/tochemey/stage/log"
)

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.DefaultLogger.Fatal(err)
	}
}

// newCommand builds the stagegen command writing --stdout output to out
func newCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "stagegen",
		Usage: "generate the typed proxy and message descriptors of an actor",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "path of the YAML actor description",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "directory the generated file is written to, defaults to the description directory",
			},
			&cli.BoolFlag{
				Name:  "stdout",
				Usage: "print the generated code instead of writing a file",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return generate(cmd.String("input"), cmd.String("output"), cmd.Bool("stdout"), out)
		},
	}
}

func generate(input, output string, stdout bool, out io.Writer) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	description, err := codegen.ParseDescription(data)
	if err != nil {
		return err
	}

	source, err := codegen.Generate(description)
	if err != nil {
		return err
	}

	if stdout {
		_, err = out.Write(source)
		return err
	}

	if output == "" {
		output = filepath.Dir(input)
	}
	target := filepath.Join(output, codegen.FileName(description))
	if err := os.WriteFile(target, source, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}
