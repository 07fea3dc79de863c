package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to agentgate! Let's configure your gateway.")
	fmt.Println()

	cfg := DefaultConfig()

	namePrompt := promptui.Prompt{
		Label:   "Agent name",
		Default: cfg.Agent.Name,
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("agent name: %w", err)
	}
	cfg.Agent.Name = name

	projectPrompt := promptui.Prompt{
		Label: "GCP project id (used to qualify context names)",
	}
	project, err := projectPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("project id: %w", err)
	}
	cfg.Agent.ProjectID = project

	locationPrompt := promptui.Prompt{
		Label:   "Agent location",
		Default: cfg.Agent.Location,
	}
	location, err := locationPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("location: %w", err)
	}
	cfg.Agent.Location = location

	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p <= 0 || p > 65535 {
				return fmt.Errorf("invalid port")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	modePrompt := promptui.Select{
		Label: "Trade execution mode",
		Items: []string{
			"approval_required - park trades until approved",
			"fully_automated   - execute immediately",
			"advisory_only     - recommend, never execute",
		},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("execution mode: %w", err)
	}
	modes := []ExecutionMode{ModeApprovalRequired, ModeFullyAutomated, ModeAdvisoryOnly}
	cfg.Trading.ExecutionMode = modes[modeIdx]

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
