// Package pm2 wraps the pm2 process supervisor.
package pm2

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/imamik/dapphost/pkg/system"
)

// Supervisor manages long-running services through pm2.
type Supervisor struct {
	runner system.Runner
}

// NewSupervisor creates a Supervisor backed by the given runner.
func NewSupervisor(runner system.Runner) *Supervisor {
	return &Supervisor{runner: runner}
}

// Process describes one supervised service as reported by pm2.
type Process struct {
	Name     string
	Status   string
	PID      int
	Restarts int
}

// Online reports whether the process is currently running.
func (p Process) Online() bool {
	return p.Status == "online"
}

// Registered reports whether a service with this name exists in the
// supervisor registry, in any state.
func (s *Supervisor) Registered(ctx context.Context, name string) bool {
	_, err := s.runner.Run(ctx, "pm2", "describe", name)
	return err == nil
}

// Register replaces any existing registration under this name with a fresh
// one. Replace-not-skip: a stale entry could point at an old command line,
// so the old registration is always removed first.
func (s *Supervisor) Register(ctx context.Context, name, command string, args []string, restartDelay time.Duration) error {
	// Ignore delete failures; the name may simply not be registered yet.
	_, _ = s.runner.Run(ctx, "pm2", "delete", name)

	startArgs := []string{
		"start", command,
		"--name", name,
		"--restart-delay", strconv.FormatInt(restartDelay.Milliseconds(), 10),
	}
	if len(args) > 0 {
		startArgs = append(startArgs, "--")
		startArgs = append(startArgs, args...)
	}

	if _, err := s.runner.Run(ctx, "pm2", startArgs...); err != nil {
		return fmt.Errorf("registering service %s: %w", name, err)
	}
	return nil
}

// Save persists the current process list so it survives supervisor restarts.
func (s *Supervisor) Save(ctx context.Context) error {
	if _, err := s.runner.Run(ctx, "pm2", "save"); err != nil {
		return fmt.Errorf("saving supervisor state: %w", err)
	}
	return nil
}

// Startup registers the supervisor itself to relaunch on host boot.
// Re-registering is harmless.
func (s *Supervisor) Startup(ctx context.Context) error {
	if _, err := s.runner.Run(ctx, "pm2", "startup", "systemd", "-u", "root", "--hp", "/root"); err != nil {
		return fmt.Errorf("registering boot persistence: %w", err)
	}
	return nil
}

// pm2JList mirrors the fields we need from `pm2 jlist` output.
type pm2JList struct {
	Name   string `json:"name"`
	PID    int    `json:"pid"`
	PM2Env struct {
		Status      string `json:"status"`
		RestartTime int    `json:"restart_time"`
	} `json:"pm2_env"`
}

// List returns all services currently known to the supervisor.
func (s *Supervisor) List(ctx context.Context) ([]Process, error) {
	out, err := s.runner.Run(ctx, "pm2", "jlist")
	if err != nil {
		return nil, fmt.Errorf("listing supervised services: %w", err)
	}

	var raw []pm2JList
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return nil, fmt.Errorf("parsing supervisor process list: %w", err)
	}

	procs := make([]Process, 0, len(raw))
	for _, r := range raw {
		procs = append(procs, Process{
			Name:     r.Name,
			Status:   r.PM2Env.Status,
			PID:      r.PID,
			Restarts: r.PM2Env.RestartTime,
		})
	}
	return procs, nil
}

// Get returns the named service from the registry, if present.
func (s *Supervisor) Get(ctx context.Context, name string) (Process, bool, error) {
	procs, err := s.List(ctx)
	if err != nil {
		return Process{}, false, err
	}
	for _, p := range procs {
		if p.Name == name {
			return p, true, nil
		}
	}
	return Process{}, false, nil
}
