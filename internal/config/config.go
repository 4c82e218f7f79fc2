package config

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/patrickprogramme/lrcsync/internal/assets"
	"github.com/patrickprogramme/lrcsync/internal/fsutil"
	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 2

// nom du fichier de config par défaut, à côté de l'exécutable
const DefaultFileName = "lrcsync.yaml"

// modes de lecture
const (
	PlayerModeMPV   = "mpv"
	PlayerModeClock = "clock"
)

// bornes de normalisation
const (
	defaultSeekStep = 5.0
	maxSeekStep     = 60.0
	defaultTickMS   = 100
	minTickMS       = 20
	maxTickMS       = 1000
)

var defaultRates = []float64{0.5, 0.75, 1, 1.25, 1.5}

// struct pour les paramètres de configuration
type Config struct {
	// Export
	OutputDir       string `yaml:"output_dir"`
	Overwrite       bool   `yaml:"overwrite"`
	CopyToClipboard bool   `yaml:"copy_to_clipboard"`

	// Paroles
	LyricsFromClipboard bool   `yaml:"lyrics_from_clipboard"`
	InputEncoding       string `yaml:"input_encoding"`

	// Lecture
	SeekStepSeconds float64   `yaml:"seek_step_seconds"`
	PlaybackRates   []float64 `yaml:"playback_rates"`
	TickMS          int       `yaml:"tick_ms"`

	// version 1 : pas de saut entier, remplacé par seek_step_seconds
	LegacySeekSeconds int `yaml:"seek_seconds,omitempty"`

	// Journal (vide => désactivé sauf --debug)
	LogFile string `yaml:"log_file"`

	Player struct {
		Mode      string   `yaml:"mode"` // mpv | clock
		Name      string   `yaml:"name"`
		Path      string   `yaml:"path"`
		ExtraArgs []string `yaml:"extra_args"`

		// ResolvedPath contient le chemin effectif vers l'exécutable
		ResolvedPath string `yaml:"-"`
	} `yaml:"player"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// Configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	c.OutputDir = "."
	c.Overwrite = false
	c.CopyToClipboard = false

	c.LyricsFromClipboard = true
	c.InputEncoding = fsutil.EncodingUTF8

	c.SeekStepSeconds = defaultSeekStep
	c.PlaybackRates = append([]float64(nil), defaultRates...)
	c.TickMS = defaultTickMS

	c.LogFile = ""

	c.Player.Mode = PlayerModeMPV
	c.Player.Name = "mpv"
	c.Player.Path = ""

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Default retourne la configuration par défaut normalisée, sans toucher au disque.
func Default() *Config {
	c := defaultConfig()
	c.normalizeConfig()
	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué depuis internal/assets
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFileName
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFromEmbedded(path); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	cfg := defaultConfig()
	// un fichier sans config_version est un fichier v0/v1 : il doit être migré
	cfg.ConfigVersion = 0

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	// les champs absents conservent les valeurs par défaut
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	// la version lue décide de la migration ; la normalisation ne la touche pas
	fromVersion := cfg.ConfigVersion
	if fromVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, fromVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
	}

	// variables d'environnement après migration, pour ne jamais les écrire sur disque
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.normalizeConfig()

	return cfg, nil
}

// FilePath retourne le chemin du fichier chargé (vide pour Default()).
func (c *Config) FilePath() string {
	return c.configFilePath
}

func createDefaultConfigFromEmbedded(dstPath string) error {
	b, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	if err != nil {
		return fmt.Errorf("lecture du modèle de configuration embarqué impossible : %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("échec mkdir pour la configuration %s : %w", filepath.Dir(dstPath), err)
	}

	if err := fsutil.WriteFileAtomic(dstPath, b, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du fichier de configuration %s : %w", dstPath, err)
	}

	fmt.Printf("info : fichier de configuration par défaut créé : %s\n", dstPath)
	return nil
}

// Normalize réapplique la normalisation ; à appeler après avoir modifié des champs
// (ex: surcharge par les flags CLI).
func (c *Config) Normalize() {
	c.normalizeConfig()
}

func (c *Config) normalizeConfig() {
	c.OutputDir = strings.TrimSpace(c.OutputDir)
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	c.OutputDir = filepath.Clean(c.OutputDir)
	c.LogFile = strings.TrimSpace(c.LogFile)
	if c.LogFile != "" {
		c.LogFile = filepath.Clean(c.LogFile)
	}

	// encodage : nom canonique ; une valeur inconnue est conservée et signalée par Validate
	if canon, err := fsutil.NormalizeEncoding(c.InputEncoding); err == nil {
		c.InputEncoding = canon
	} else {
		c.InputEncoding = strings.ToLower(strings.TrimSpace(c.InputEncoding))
	}

	if c.SeekStepSeconds <= 0 {
		c.SeekStepSeconds = defaultSeekStep
	}
	if c.SeekStepSeconds > maxSeekStep {
		c.SeekStepSeconds = maxSeekStep
	}

	if c.TickMS <= 0 {
		c.TickMS = defaultTickMS
	}
	if c.TickMS < minTickMS {
		c.TickMS = minTickMS
	}
	if c.TickMS > maxTickMS {
		c.TickMS = maxTickMS
	}

	c.PlaybackRates = normalizeRates(c.PlaybackRates)

	c.Player.Mode = strings.ToLower(strings.TrimSpace(c.Player.Mode))
	if c.Player.Mode == "" {
		c.Player.Mode = PlayerModeMPV
	}

	c.ResolvePlayerPath()
}

// normalizeRates trie, dédoublonne, retire les valeurs <= 0 et garantit la présence de 1.0
func normalizeRates(in []float64) []float64 {
	out := make([]float64, 0, len(in)+1)
	seen := map[float64]bool{}
	candidates := append(append([]float64(nil), in...), 1)
	for _, r := range candidates {
		if r <= 0 || r > 4 || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	sort.Float64s(out)
	return out
}

// ResolvePlayerPath normalise le nom et résout le chemin complet vers l'exécutable.
// Appeler après avoir modifié cfg.Player.Name ou cfg.Player.Path.
func (c *Config) ResolvePlayerPath() {
	if c == nil {
		return
	}

	c.Player.Name = strings.TrimSpace(c.Player.Name)
	if c.Player.Name == "" {
		c.Player.Name = "mpv"
	}
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(c.Player.Name), ".exe") {
		c.Player.Name = c.Player.Name + ".exe"
	}

	exeName := c.Player.Name
	cfgPath := strings.TrimSpace(c.Player.Path)
	if cfgPath == "" {
		// mpv est en général installé dans le PATH ; sinon "./<exe>" à côté du binaire
		if found, err := exec.LookPath(exeName); err == nil {
			c.Player.ResolvedPath = found
			return
		}
		c.Player.ResolvedPath = "./" + exeName
		return
	}
	cleanPath := filepath.Clean(cfgPath)

	// si le chemin fourni finit déjà par l'exécutable -> on l'utilise
	if filepath.Base(cleanPath) == exeName {
		c.Player.ResolvedPath = cleanPath
	} else {
		// sinon on considère cfgPath comme un répertoire et on y joint l'exe
		c.Player.ResolvedPath = filepath.Join(cleanPath, exeName)
	}
}
