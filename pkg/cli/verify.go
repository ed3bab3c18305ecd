/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/openbatch/batchadmit/pkg/attribute"
	"github.com/openbatch/batchadmit/pkg/config"
	apperrors "github.com/openbatch/batchadmit/pkg/errors"
	"github.com/openbatch/batchadmit/pkg/rescdef"
	"github.com/openbatch/batchadmit/pkg/serializer"
	"github.com/openbatch/batchadmit/pkg/verifier"
)

// verifyFileConcurrency bounds how many input files are verified at once.
const verifyFileConcurrency = 4

// verifyInput is the decoded shape of one input file.
type verifyInput struct {
	RequestKind attribute.RequestKind  `json:"requestKind" yaml:"requestKind"`
	ObjectKind  attribute.ObjectKind   `json:"objectKind,omitempty" yaml:"objectKind,omitempty"`
	Command     attribute.Command      `json:"command,omitempty" yaml:"command,omitempty"`
	Attributes  []*attribute.Attribute `json:"attributes" yaml:"attributes"`
}

// attributeReport is the per-attribute outcome written to the output.
type attributeReport struct {
	Attribute string `json:"attribute" yaml:"attribute"`
	Resource  string `json:"resource,omitempty" yaml:"resource,omitempty"`
	Status    string `json:"status" yaml:"status"`
	Code      string `json:"code,omitempty" yaml:"code,omitempty"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
	Value     string `json:"value,omitempty" yaml:"value,omitempty"`
	Hint      string `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// fileReport is the outcome for one input file.
type fileReport struct {
	File        string                `json:"file" yaml:"file"`
	RequestKind attribute.RequestKind `json:"requestKind" yaml:"requestKind"`
	Accepted    int                   `json:"accepted" yaml:"accepted"`
	Rejected    int                   `json:"rejected" yaml:"rejected"`
	Results     []attributeReport     `json:"results" yaml:"results"`
}

func verifyCmd() *cli.Command {
	return &cli.Command{
		Name:                  "verify",
		EnableShellCompletion: true,
		Usage:                 "Verify attribute sets from request files",
		Description: `Verifies every attribute in the given request files against the
admission rules: attribute grammar, resource datatypes and value
policies, selection specifications, preemption targets, and access
lists.

Each file holds one request (YAML or JSON):

  requestKind: submit-job
  objectKind: job
  attributes:
    - name: Priority
      value: "10"
    - name: Resource_List
      resource: ncpus
      value: "4"

Files are verified concurrently. Attributes naming a resource unknown
to the server carry a hint with the closest known resource name.

# Examples

Verify one request:
  admitctl verify --file submit.yaml

Verify several, render a table:
  admitctl verify -f submit.yaml -f modify.json --format table

Fail the pipeline on any rejection:
  admitctl verify -f submit.yaml --fail-on-reject`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    "request file to verify (can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "fail-on-reject",
				Usage: "exit non-zero when any attribute is rejected",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			engine := config.DefaultEngine()
			registry, err := verifier.New(engine.RegistryOptions()...)
			if err != nil {
				return fmt.Errorf("building verification registry: %w", err)
			}
			resources, err := rescdef.ServerResources()
			if err != nil {
				return fmt.Errorf("loading resource definitions: %w", err)
			}

			files := cmd.StringSlice("file")
			reports := make([]fileReport, len(files))

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(verifyFileConcurrency)
			for i, path := range files {
				g.Go(func() error {
					report, err := verifyFile(gctx, registry, resources, path)
					if err != nil {
						return err
					}
					reports[i] = report
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err != nil {
				return err
			}
			defer func() {
				if closer, ok := ser.(serializer.Closer); ok {
					if err := closer.Close(); err != nil {
						slog.Warn("failed to close output writer", "error", err)
					}
				}
			}()
			if err := ser.Serialize(ctx, reports); err != nil {
				return err
			}

			if cmd.Bool("fail-on-reject") {
				rejected := 0
				for _, r := range reports {
					rejected += r.Rejected
				}
				if rejected > 0 {
					return fmt.Errorf("%d attribute(s) rejected", rejected)
				}
			}
			return nil
		},
	}
}

// verifyFile verifies every attribute in one request file. Rejections
// land in the report; only local failures return an error.
func verifyFile(ctx context.Context, registry *verifier.Registry, resources *rescdef.Table, path string) (fileReport, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fileReport{}, fmt.Errorf("reading %q: %w", path, err)
	}

	var input verifyInput
	if err := yaml.Unmarshal(raw, &input); err != nil {
		return fileReport{}, fmt.Errorf("decoding %q: %w", path, err)
	}
	if !input.RequestKind.IsValid() {
		return fileReport{}, fmt.Errorf("%q: unknown request kind %q", path, input.RequestKind)
	}

	req := verifier.Request{
		Kind:    input.RequestKind,
		Object:  input.ObjectKind,
		Command: input.Command,
	}

	report := fileReport{
		File:        path,
		RequestKind: input.RequestKind,
		Results:     make([]attributeReport, 0, len(input.Attributes)),
	}
	for _, attr := range input.Attributes {
		if attr == nil {
			return fileReport{}, fmt.Errorf("%q: null attribute entry", path)
		}

		err := registry.Verify(ctx, req, attr)
		if apperrors.IsSystem(err) {
			return fileReport{}, fmt.Errorf("verifying %s in %q: %w", attr.Name, path, err)
		}

		res := attributeReport{
			Attribute: attr.Name,
			Resource:  attr.Resource,
			Hint:      resourceHint(resources, attr),
		}
		if err != nil {
			res.Status = "rejected"
			res.Code = string(apperrors.CodeOf(err))
			res.Message = apperrors.MessageOf(err)
			report.Rejected++
		} else {
			res.Status = "accepted"
			res.Value = attr.Value
			report.Accepted++
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

// resourceHint flags resources the server tables do not know, with the
// closest known name when one is near enough. Unknown resources are
// accepted by the engine, so a typo would otherwise pass silently.
func resourceHint(resources *rescdef.Table, attr *attribute.Attribute) string {
	if attr.Resource == "" || resources.Find(attr.Resource) != nil {
		return ""
	}
	if closest := resources.Closest(attr.Resource); closest != "" {
		return fmt.Sprintf("unknown resource %q; closest known resource is %q", attr.Resource, closest)
	}
	return fmt.Sprintf("unknown resource %q", attr.Resource)
}
