package assets

import "embed"

//go:embed lrcsync.example.yaml
//go:embed templates/*tmpl
var Embedded embed.FS

// Nom de l'asset de config par défaut (chemin DANS Embedded)
const DefaultConfigAsset = "lrcsync.example.yaml"

// HelpTemplate est le modèle markdown de l'écran d'aide.
const HelpTemplate = "templates/help.md.tmpl"

// DefaultTemplatePaths : templates copiés à côté du binaire au premier lancement,
// pour pouvoir être personnalisés.
var DefaultTemplatePaths = []string{
	HelpTemplate,
}
