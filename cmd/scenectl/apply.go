package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lokanhome/lokan-go/scene"
)

type applyFlags struct {
	payload     string
	payloadFile string
	ops         []string
}

func newApplyCmd(a *app) *cobra.Command {
	var f applyFlags
	cmd := &cobra.Command{
		Use:   "apply [scene-id]",
		Short: "Apply a scene",
		Long: `Apply a scene by ID, with a raw JSON payload, or as a list of device operations.

  scenectl apply evening
  scenectl apply --payload '{"sceneId":"evening"}'
  scenectl apply --payload-file scene.json
  scenectl apply night --op lamp-1='{"on":false}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sceneID string
			if len(args) == 1 {
				sceneID = args[0]
			}
			if len(f.ops) > 0 {
				return a.applyOperations(cmd, sceneID, f.ops)
			}
			return a.applyScene(cmd, sceneID, f)
		},
	}
	cmd.Flags().StringVar(&f.payload, "payload", "", "JSON body sent verbatim")
	cmd.Flags().StringVar(&f.payloadFile, "payload-file", "", "file whose content is sent verbatim")
	cmd.Flags().StringArrayVar(&f.ops, "op", nil, "device operation as device-id=<state JSON> (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("payload", "payload-file", "op")
	return cmd
}

func (a *app) applyScene(cmd *cobra.Command, sceneID string, f applyFlags) error {
	var opts []scene.ApplyOption
	switch {
	case cmd.Flags().Changed("payload"):
		opts = append(opts, scene.WithPayload(f.payload))
	case f.payloadFile != "":
		data, err := os.ReadFile(f.payloadFile)
		if err != nil {
			return fmt.Errorf("reading payload file: %w", err)
		}
		opts = append(opts, scene.WithPayload(string(data)))
	case sceneID == "":
		return errors.New("a scene ID or a payload is required")
	}

	if err := a.client.ApplyScene(cmd.Context(), sceneID, opts...); err != nil {
		return err
	}
	if sceneID == "" || len(opts) > 0 {
		fmt.Fprintln(a.out, "Scene payload applied")
	} else {
		fmt.Fprintf(a.out, "Scene %s applied\n", sceneID)
	}
	return nil
}

func (a *app) applyOperations(cmd *cobra.Command, sceneID string, args []string) error {
	req := scene.SceneRequest{SceneID: sceneID}
	for _, arg := range args {
		op, err := parseOperation(arg)
		if err != nil {
			return err
		}
		req.Operations = append(req.Operations, op)
	}

	resp, err := a.client.ApplyOperations(cmd.Context(), req)
	if err != nil {
		return err
	}

	status := resp.Status
	if status == "" {
		status = "accepted"
	}
	fmt.Fprintf(a.out, "Scene status: %s\n", status)
	for _, r := range resp.Results {
		if r.Detail != "" {
			fmt.Fprintf(a.out, "  %s: %s (%s)\n", r.DeviceID, r.Status, r.Detail)
		} else {
			fmt.Fprintf(a.out, "  %s: %s\n", r.DeviceID, r.Status)
		}
	}
	return nil
}

// parseOperation parses device-id=<state JSON>.
func parseOperation(arg string) (scene.DeviceOperation, error) {
	id, state, ok := strings.Cut(arg, "=")
	if !ok || id == "" {
		return scene.DeviceOperation{}, fmt.Errorf("invalid --op %q: want device-id=<state JSON>", arg)
	}
	if !json.Valid([]byte(state)) {
		return scene.DeviceOperation{}, fmt.Errorf("invalid --op %q: state is not valid JSON", arg)
	}
	return scene.DeviceOperation{DeviceID: id, State: json.RawMessage(state)}, nil
}
