package playback

// MPVConfig représente les flags passés à mpv au lancement
type MPVConfig struct {
	NoConfig    bool // true => --no-config pour ignorer mpv.conf utilisateur
	NoVideo     bool
	NoTerminal  bool
	StartPaused bool
	KeepOpen    bool // reste sur la dernière image en fin de fichier au lieu de quitter
	ExtraArgs   []string
}

// NewMPVConfig initialise une configuration standard ; extraArgs vient du yaml de config
func NewMPVConfig(extraArgs []string) *MPVConfig {
	return &MPVConfig{
		NoConfig:    true,
		NoVideo:     true,
		NoTerminal:  true,
		StartPaused: true,
		KeepOpen:    true,
		ExtraArgs:   extraArgs,
	}
}

// BuildArgs construit la liste des arguments à passer à mpv.
func (c *MPVConfig) BuildArgs(socketPath, file string) []string {
	args := make([]string, 0, 8+len(c.ExtraArgs))
	// --no-config doit rester en tête
	if c.NoConfig {
		args = append(args, "--no-config")
	}
	if c.NoTerminal {
		args = append(args, "--no-terminal")
	}
	if c.NoVideo {
		args = append(args, "--no-video")
	}
	if c.StartPaused {
		args = append(args, "--pause")
	}
	if c.KeepOpen {
		args = append(args, "--keep-open=yes")
	}
	args = append(args, "--idle=no", "--input-ipc-server="+socketPath)
	args = append(args, c.ExtraArgs...)
	// "--" : un fichier nommé "-x.mp3" ne doit pas être pris pour une option
	args = append(args, "--", file)
	return args
}
