package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alexflint/go-arg"

	"github.com/patrickprogramme/lrcsync/internal/app"
	"github.com/patrickprogramme/lrcsync/internal/assets"
	"github.com/patrickprogramme/lrcsync/internal/bootstrap"
	"github.com/patrickprogramme/lrcsync/internal/config"
	"github.com/patrickprogramme/lrcsync/internal/help"
)

// version est injectée au build : -ldflags "-X main.version=..."
var version = "dev"

type args struct {
	app.CLIFlags
}

func (args) Version() string { return "lrcsync " + version }

func (args) Description() string {
	return "Horodatage interactif de paroles : produit un fichier .lrc synchronisé avec un fichier audio."
}

func main() {
	var a args
	arg.MustParse(&a)
	flags := &a.CLIFlags

	// déterminer exePath/binDir
	binDir := "."
	exePath, err := os.Executable()
	if err != nil {
		log.Printf("impossible de déterminer le chemin de l'executable: %v", err)
	} else {
		binDir = filepath.Dir(exePath)
	}

	// emplacement config par défaut
	if flags.ConfigPath == config.DefaultFileName || flags.ConfigPath == "" {
		flags.ConfigPath = filepath.Join(binDir, config.DefaultFileName)
	}

	// s'assurer que le fichier config existe, si non on le crée
	created, err := bootstrap.EnsureConfigPresent(flags.ConfigPath, assets.Embedded, assets.DefaultConfigAsset)
	if err != nil {
		log.Printf("erreur: EnsureConfigPresent: %v", err)
	} else if created {
		fmt.Printf("info: configuration par défaut créée: %s\n", flags.ConfigPath)
	}

	// templates personnalisables dans binDir/templates
	tplDir := filepath.Join(binDir, "templates")
	if copied, err := bootstrap.EnsureTemplatesPresent(tplDir, assets.Embedded, assets.DefaultTemplatePaths); err != nil {
		log.Printf("warning: ensure templates present: %v", err)
	} else {
		for _, p := range copied {
			fmt.Printf("info: template copié: %s\n", p)
		}
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	// les flags passent par-dessus la config
	flags.Apply(cfg)
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalide: %v", err)
	}
	warnings, err := cfg.ValidatePlayerPresence()
	if err != nil {
		log.Fatalf("lecteur: %v", err)
	}
	for _, w := range warnings {
		fmt.Printf("warning: %s\n", w)
	}

	renderer, err := help.DefaultRenderer(exePath)
	if err != nil {
		log.Fatalf("impossible de construire le renderer: %v", err)
	}

	// root context qui s'annule sur SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(cfg, flags, renderer, version).Run(ctx); err != nil {
		log.Fatalf("app run: %v", err)
	}
}
