package app

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/186526/arin-irr-syncer/internal/asset"
	"github.com/186526/arin-irr-syncer/internal/ctxlog"
	"github.com/186526/arin-irr-syncer/internal/expand"
	"github.com/186526/arin-irr-syncer/internal/registry"
)

// Run executes the configured action.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "action", cfg.Action, "target", cfg.Target)

	switch cfg.Action {
	case ActionConvert:
		return a.runConvert(ctx, cfg)
	case ActionExpand:
		return a.runExpand(ctx, cfg)
	case ActionGet:
		return a.runGet(ctx, cfg)
	case ActionCreate, ActionUpdate:
		return a.runPush(ctx, cfg, false)
	case ActionSync:
		return a.runPush(ctx, cfg, true)
	case ActionDelete:
		return a.runDelete(ctx, cfg)
	}
	return fmt.Errorf("unknown action %q", cfg.Action)
}

// runConvert re-encodes a local file in another representation.
func (a *App) runConvert(ctx context.Context, cfg *Config) error {
	set, inFormat, err := a.loadASSet(cfg.Target)
	if err != nil {
		return err
	}
	return a.encodeAndWrite(cfg, set, inFormat)
}

// runExpand resolves the member list of a local file and emits the object
// with its members replaced by the resolved set.
func (a *App) runExpand(ctx context.Context, cfg *Config) error {
	set, inFormat, err := a.loadASSet(cfg.Target)
	if err != nil {
		return err
	}
	if err := a.resolveMembers(ctx, set); err != nil {
		return err
	}
	return a.encodeAndWrite(cfg, set, inFormat)
}

// runGet fetches an AS-SET from the registry and emits it.
func (a *App) runGet(ctx context.Context, cfg *Config) error {
	client, err := a.registryClient()
	if err != nil {
		return err
	}
	defer client.Close()

	set, err := client.Get(ctx, cfg.Target)
	if err != nil {
		return err
	}
	a.logger.Info("Fetched as-set from registry.", "name", set.Name, "members", len(set.Members))
	return a.encodeAndWrite(cfg, set, asset.FormatYAML)
}

// runPush sends a local file to the registry, resolving members first when
// flatten is set (the sync action).
func (a *App) runPush(ctx context.Context, cfg *Config, flatten bool) error {
	set, _, err := a.loadASSet(cfg.Target)
	if err != nil {
		return err
	}
	if flatten {
		if err := a.resolveMembers(ctx, set); err != nil {
			return err
		}
	}

	client, err := a.registryClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if cfg.Action == ActionCreate {
		err = client.Create(ctx, set)
	} else {
		err = client.Update(ctx, set)
	}
	if err != nil {
		return err
	}
	a.logger.Info("Pushed as-set to registry.", "name", set.Name, "members", len(set.Members))
	return nil
}

func (a *App) runDelete(ctx context.Context, cfg *Config) error {
	client, err := a.registryClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Delete(ctx, cfg.Target); err != nil {
		return err
	}
	a.logger.Info("Deleted as-set from registry.", "name", cfg.Target)
	return nil
}

// resolveMembers runs the member resolver over the object's declared members
// and assigns the flattened, deduplicated set back, sorted for presentation.
func (a *App) resolveMembers(ctx context.Context, set *asset.ASSet) error {
	command, host, sources, opts, err := a.settings.ExpanderOptions()
	if err != nil {
		return err
	}
	resolver := expand.NewResolver(expand.NewBGPQ(command, host), opts)

	members, err := resolver.Resolve(ctx, set.Members, sources)
	if err != nil {
		return err
	}
	sort.Strings(members)
	set.Members = asset.PlainMembers(members)
	a.logger.Info("Resolved member list.", "name", set.Name, "members", len(members))
	return nil
}

func (a *App) registryClient() (*registry.Client, error) {
	cfg, err := a.settings.RegistryConfig()
	if err != nil {
		return nil, err
	}
	return registry.New(cfg), nil
}

func (a *App) loadASSet(path string) (*asset.ASSet, asset.Format, error) {
	format, err := asset.DetectFormat(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	set, err := asset.Decode(data, format)
	if err != nil {
		return nil, "", fmt.Errorf("parsing %s: %w", path, err)
	}
	a.logger.Debug("Loaded as-set object.", "path", path, "format", format, "members", len(set.Members))
	return set, format, nil
}

// encodeAndWrite renders set in cfg.OutFormat (falling back to the source
// format) and writes the result.
func (a *App) encodeAndWrite(cfg *Config, set *asset.ASSet, fallback asset.Format) error {
	format := fallback
	if cfg.OutFormat != "" {
		var err error
		if format, err = asset.ParseFormat(cfg.OutFormat); err != nil {
			return err
		}
	}
	data, err := asset.Encode(set, format)
	if err != nil {
		return err
	}
	return a.writeResult(cfg, data)
}
