package tui

import "strings"

func (m *Model) viewSplash() string {
	return strings.Join([]string{
		accentStyle.Render("parcours"),
		"",
		titleStyle.Render("Un parcours d'apprentissage qui s'adapte à toi"),
		mutedStyle.Render("Appuie sur une touche pour commencer"),
	}, "\n")
}
