package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	gokitlog "github.com/go-kit/log"
	"github.com/spf13/cobra"

	"github.com/nvoss/gpacalc/internal/config"
	"github.com/nvoss/gpacalc/internal/entitlement"
	"github.com/nvoss/gpacalc/internal/logging"
	"github.com/nvoss/gpacalc/internal/model"
	"github.com/nvoss/gpacalc/internal/scale"
	"github.com/nvoss/gpacalc/internal/store"
)

// app bundles the wiring every subcommand needs: the open store, the
// resolved profile and scale, and the entitlement gate.
type app struct {
	store       *store.Store
	profile     model.Profile
	gate        *entitlement.Gate
	scale       scale.Scale
	multipliers scale.Multipliers
	logger      gokitlog.Logger
}

// newApp loads the config file, merges it under the CLI flags, opens the
// database, and resolves the active profile. The returned cleanup closes
// the store.
func newApp(cmd *cobra.Command) (*app, func(), error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "profile", &rootProfile, fileCfg.Defaults.Profile)
	applyStringConfig(cmd, "scale", &rootScale, fileCfg.Defaults.Scale)

	profileName := strings.TrimSpace(rootProfile)
	if profileName == "" {
		profileName = model.GuestProfileName
	}
	sc, err := scale.Parse(rootScale)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(os.Stderr)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	cleanup := func() {
		if cerr := st.Close(); cerr != nil {
			logging.Warn(logger, "failed to close db", "err", cerr)
		}
	}

	profile, err := st.EnsureProfile(context.Background(), profileName)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	devUnlock := false
	if fileCfg.Premium.DevUnlock != nil {
		devUnlock = *fileCfg.Premium.DevUnlock
	}
	gate := entitlement.NewGate(st, profile.ID, devUnlock)

	return &app{
		store:       st,
		profile:     profile,
		gate:        gate,
		scale:       sc,
		multipliers: scale.DefaultMultipliers(),
		logger:      logger,
	}, cleanup, nil
}

// applyStringConfig fills a flag target from the config file unless the
// flag was set on the command line. Persistent flags are looked up
// through the command chain.
func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.InheritedFlags().Lookup(name)
	}
	if flag == nil || flag.Changed {
		return
	}
	*target = *value
}

// parseOptionalFloat turns a user-entered numeric string into an
// optional value. Blank or unparseable input means "not provided", never
// zero.
func parseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// latestSemester returns the most recently added semester for the active
// scale.
func (a *app) latestSemester(ctx context.Context) (model.Semester, error) {
	semesters, err := a.store.ListSemesters(ctx, a.profile.ID, a.scale)
	if err != nil {
		return model.Semester{}, err
	}
	if len(semesters) == 0 {
		return model.Semester{}, fmt.Errorf("no semesters yet; run: gpacalc semester add")
	}
	return semesters[len(semesters)-1], nil
}
