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

package codegen

import (
	"errors"
	"fmt"
	"go/token"

	"gopkg.in/yaml.v3"

	"github.com/tochemey/stage/internal/validation"
)

// reservedNames cannot be used as argument names since the generated code uses them
var reservedNames = map[string]struct{}{
	"ctx":     {},
	"p":       {},
	"msg":     {},
	"target":  {},
	"actor":   {},
	"future":  {},
	"context": {},
}

// reservedOperations are the methods every generated proxy already declares
var reservedOperations = map[string]struct{}{
	"Inner":   {},
	"Clone":   {},
	"Release": {},
}

// Description describes an actor and the operations its proxy exposes
type Description struct {
	// Package is the Go package the generated file belongs to
	Package string `yaml:"package"`
	// Actor is the name of the actor type. Stages run a pointer to it.
	Actor string `yaml:"actor"`
	// Imports lists the extra import paths argument and result types need
	Imports []string `yaml:"imports,omitempty"`
	// Operations lists the actor methods reachable through the proxy
	Operations []*Operation `yaml:"operations"`
}

// Operation describes one actor method.
// An operation without Returns is a fire-and-forget message.
type Operation struct {
	Name    string      `yaml:"name"`
	Args    []*Argument `yaml:"args,omitempty"`
	Returns string      `yaml:"returns,omitempty"`
}

// Argument is one operation parameter
type Argument struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// IsRequest reports whether the operation produces a result
func (x *Operation) IsRequest() bool {
	return x.Returns != ""
}

// ParseDescription decodes and validates a YAML actor description
func ParseDescription(data []byte) (*Description, error) {
	description := new(Description)
	if err := yaml.Unmarshal(data, description); err != nil {
		return nil, fmt.Errorf("failed to parse actor description: %w", err)
	}

	if err := description.Validate(); err != nil {
		return nil, err
	}
	return description, nil
}

// Validate reports every problem of the description at once
func (x *Description) Validate() error {
	chain := validation.New(validation.AllErrors()).
		AddAssertion(token.IsIdentifier(x.Package), fmt.Errorf("package %q is not a valid identifier", x.Package)).
		AddAssertion(token.IsIdentifier(x.Actor), fmt.Errorf("actor %q is not a valid identifier", x.Actor)).
		AddAssertion(len(x.Operations) > 0, errors.New("at least one operation is required"))

	operations := make(map[string]struct{}, len(x.Operations))
	for _, operation := range x.Operations {
		if operation == nil {
			chain.AddAssertion(false, errors.New("operation must not be empty"))
			continue
		}

		_, duplicate := operations[operation.Name]
		_, reserved := reservedOperations[operation.Name]
		operations[operation.Name] = struct{}{}
		chain.
			AddAssertion(token.IsIdentifier(operation.Name) && token.IsExported(operation.Name),
				fmt.Errorf("operation %q must be an exported identifier", operation.Name)).
			AddAssertion(!reserved, fmt.Errorf("operation %q clashes with a proxy method", operation.Name)).
			AddAssertion(!duplicate, fmt.Errorf("operation %q is declared more than once", operation.Name))

		args := make(map[string]struct{}, len(operation.Args))
		for _, arg := range operation.Args {
			if arg == nil {
				chain.AddAssertion(false, fmt.Errorf("operation %q has an empty argument", operation.Name))
				continue
			}

			_, duplicate := args[arg.Name]
			_, reserved := reservedNames[arg.Name]
			args[arg.Name] = struct{}{}
			chain.
				AddAssertion(token.IsIdentifier(arg.Name),
					fmt.Errorf("argument %q of %s is not a valid identifier", arg.Name, operation.Name)).
				AddAssertion(!reserved,
					fmt.Errorf("argument %q of %s is a reserved name", arg.Name, operation.Name)).
				AddAssertion(!duplicate,
					fmt.Errorf("argument %q of %s is declared more than once", arg.Name, operation.Name)).
				AddAssertion(arg.Type != "",
					fmt.Errorf("argument %q of %s has no type", arg.Name, operation.Name))
		}
	}

	return chain.Validate()
}
