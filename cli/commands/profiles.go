package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/petal-labs/calla/profiles"
)

// profileInfo is the printable summary of one capability profile.
type profileInfo struct {
	Name              string `json:"name"`
	Source            string `json:"source"`
	AllowTextFallback bool   `json:"allow_text_fallback"`
	LenientJSON       bool   `json:"lenient_json"`
	NamePolicy        string `json:"name_policy"`
}

func (a *App) newProfilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List available capability profiles",
		Long: `List the built-in capability profiles and any defined in the config file.
A config profile with the same name as a built-in takes precedence.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProfiles()
		},
	}
}

func (a *App) runProfiles() error {
	byName := make(map[string]profileInfo)

	for _, name := range profiles.List() {
		p, _ := profiles.Get(name)
		byName[name] = profileInfo{
			Name:              name,
			Source:            "built-in",
			AllowTextFallback: p.Capabilities.AllowTextFallback,
			LenientJSON:       p.Capabilities.LenientJSON,
			NamePolicy:        p.Capabilities.NamePolicy.String(),
		}
	}

	for name, pc := range a.cfg.Profiles {
		caps, err := pc.Capabilities()
		if err != nil {
			return fmt.Errorf("profile %s: %w", name, err)
		}
		byName[name] = profileInfo{
			Name:              name,
			Source:            "config",
			AllowTextFallback: caps.AllowTextFallback,
			LenientJSON:       caps.LenientJSON,
			NamePolicy:        caps.NamePolicy.String(),
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	if a.jsonOutput {
		list := make([]profileInfo, 0, len(names))
		for _, name := range names {
			list = append(list, byName[name])
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	for _, name := range names {
		info := byName[name]
		fmt.Fprintf(a.stdout, "%-14s %-9s text_fallback=%-5v lenient_json=%-5v name_policy=%s\n",
			info.Name, info.Source, info.AllowTextFallback, info.LenientJSON, info.NamePolicy)
	}
	return nil
}
