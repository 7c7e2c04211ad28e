package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/cardgrid/internal/browse"
	"github.com/mmcdole/cardgrid/internal/domain"
)

const defaultListWidth = 80

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of cards and the resolved location",
	Long: `List fetches a single page for the location given with --location
(or the last saved location) and prints the cards, one per line,
followed by the location. The saved location is not changed.

Examples:
  cardgrid list
  cardgrid list --location "page=2&limit=20&search=goblin"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()

		loc := location
		if loc == "" {
			if saved, ok := a.store.Location(); ok {
				loc = saved
			}
		}
		state := browse.ParseLocation(loc, a.cfg.Browse.Limit)

		ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Browse.RequestTimeout)
		defer cancel()

		cards, err := a.cards.Fetch(ctx, state.Query())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		width, isTTY := terminalWidth(out)
		color.NoColor = !isTTY

		writeCards(out, cards, width, state.Search)
		fmt.Fprintln(out, state.Location())
		return nil
	},
}

// terminalWidth reports the width of w and whether it is a terminal
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultListWidth, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultListWidth, true
	}
	return width, true
}

// writeCards prints one card per line: name, mana cost and type in columns
func writeCards(w io.Writer, cards []domain.Card, width int, search string) {
	if len(cards) == 0 {
		if search != "" {
			fmt.Fprintf(w, "%s\n", color.HiBlackString("No cards match %q", search))
		} else {
			fmt.Fprintln(w, color.HiBlackString("No cards"))
		}
		return
	}

	nameWidth, manaWidth := 0, 0
	for _, c := range cards {
		nameWidth = max(nameWidth, len([]rune(c.Name)))
		manaWidth = max(manaWidth, len([]rune(c.ManaCost)))
	}
	nameWidth = min(nameWidth, max(width/2, 10))

	for _, c := range cards {
		name := fit(c.Name, nameWidth)
		mana := fit(c.ManaCost, manaWidth)
		typeWidth := max(width-nameWidth-manaWidth-4, 0)
		fmt.Fprintf(w, "%s  %s  %s\n",
			color.HiWhiteString("%s", name),
			color.CyanString("%s", mana),
			color.HiBlackString("%s", fit(c.Type, typeWidth)))
	}
}

// fit pads or truncates s to exactly width runes
func fit(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 3 {
			return string(runes[:width])
		}
		return string(runes[:width-3]) + "..."
	}
	return fmt.Sprintf("%-*s", width, s)
}
