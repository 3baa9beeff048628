package cmd

import (
	"fmt"
	"image"
	"image/color" // This is the standard library color package
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"golang.org/x/term"

	"github.com/AdamMil/BirdhouseManor/internal/catalog"
	"github.com/AdamMil/BirdhouseManor/internal/logger"
	"github.com/AdamMil/BirdhouseManor/internal/tiles"

	colorize "github.com/fatih/color" // Rename this import to avoid the conflict
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Display a compiled game, or one of its cards with ANSI art",
	Long: `Show compiles a game and prints a summary of its catalog. Given a name, it displays that
dungeon card, action card, hero or monster instead, with ANSI terminal art made from its
image when there is one. Dungeon cards are also drawn as a grid of square symbols.

You can specify a game using the --game flag, which will look for the game
in your game library (XDG_DATA_HOME/birdhouse/games) or as a path.
If no game is specified, the default game from your config will be used.

Examples:
  birdhouse show
  birdhouse show --game ravenloft "Dark Fountain"
  birdhouse show --game ./my-game Strahd`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gamePath, err := gameArg(cmd)
		if err != nil {
			return err
		}
		cat, doc, err := loadCatalog(gamePath)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			displaySummary(cat)
			return nil
		}

		entry, ok := findEntry(cat, args[0])
		if !ok {
			return fmt.Errorf("nothing named %q in %s", args[0], cat.Name())
		}

		art := entry.grid
		if entry.image != "" {
			path := entry.image
			if !filepath.IsAbs(path) {
				path = filepath.Join(doc.Dir, path)
			}
			if ansi, err := imageFileToAnsi(path); err == nil {
				art = ansi
			} else {
				logger.Log.WithError(err).WithField("image", path).Warn("can't render image")
			}
		}

		displayEntry(entry.info, art, cat.Name())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("game", "g", "", "Specify a game from your game library or a path to a game")
}

// entry is something show can display.
type entry struct {
	info  []string
	image string
	grid  string
}

func label(name string) string {
	return colorize.CyanString("%-12s", name+":")
}

func value(format string, args ...any) string {
	return colorize.HiWhiteString(format, args...)
}

// findEntry looks a name up in every section of the catalog, dungeon cards first.
func findEntry(cat *catalog.Catalog, name string) (entry, bool) {
	if c, ok := cat.DungeonCard(name); ok {
		return dungeonEntry(&c), true
	}
	for _, group := range [][]catalog.Card{cat.Encounters(), cat.Treasures(), cat.Powers()} {
		for i := range group {
			if group[i].Name == name {
				return cardEntry(&group[i]), true
			}
		}
	}
	if h, ok := cat.Hero(name); ok {
		return heroEntry(&h), true
	}
	if m, ok := cat.Monster(name); ok {
		return monsterEntry(&m), true
	}
	return entry{}, false
}

func dungeonEntry(c *tiles.Card) entry {
	return entry{
		info: []string{
			label("Tile") + value("%s", c.Name),
			label("Draw") + value("%s", c.Draw),
			label("Difficulty") + value("%s", c.Difficulty),
			label("Copies") + value("%d", c.Count),
			label("Size") + value("%s", c.Size),
		},
		image: c.Image,
		grid:  c.GridString(),
	}
}

func cardEntry(c *catalog.Card) entry {
	info := []string{
		label("Card") + value("%s", c.Name),
		label("Type") + value("%s", strings.TrimSpace(c.TypeName()+" "+c.Kind.String())),
		label("Copies") + value("%d", c.Count),
	}
	if c.Class != "" {
		info = append(info, label("Class")+value("%s", c.Class))
	}
	if c.AttackBonus != "" || c.Damage != "" {
		info = append(info, label("Attack")+value("%s %s", c.AttackBonus, c.Damage))
	}
	if c.Template != nil && c.Template.ID != "" {
		info = append(info, label("Template")+value("%s", c.Template.ID))
	}
	info = appendText(info, "Description", c.Description)
	info = appendText(info, "Flavor", c.Flavor)
	return entry{info: info}
}

func heroEntry(h *catalog.HeroClass) entry {
	info := []string{
		label("Hero") + value("%s", h.Name),
		label("Race") + value("%s", h.Race),
	}
	for _, l := range h.Levels {
		info = append(info, label(fmt.Sprintf("Level %d", l.Level))+
			value("AC %d, HP %d, speed %d, surge %d", l.AC, l.HP, l.Speed, l.Surge))
		for _, s := range l.Skills {
			info = append(info, "  skill: "+s)
		}
		for _, p := range l.Powers {
			info = append(info, "  power: "+p.String())
		}
	}
	info = appendText(info, "Flavor", h.Flavor)
	return entry{info: info, image: h.TokenImage}
}

func monsterEntry(m *catalog.MonsterClass) entry {
	kind := "Monster"
	if m.Villain {
		kind = "Villain"
	}
	info := []string{
		label(kind) + value("%s", m.Name),
		label("Stats") + value("AC %d, HP %d, XP %d", m.AC, m.HP, m.XP),
	}
	for _, a := range m.Attacks {
		info = append(info, label("Attack")+value("%s %s, %s", a.Name, a.Bonus, a.Damage))
	}
	for _, p := range m.Powers {
		info = append(info, label("Power")+value("%s", p.Name))
	}
	for _, t := range m.Tactics {
		info = appendText(info, "Tactic", t)
	}
	return entry{info: info, image: m.TokenImage}
}

// appendText adds a heading and wrapped text if text isn't empty
func appendText(lines []string, heading, text string) []string {
	if text == "" {
		return lines
	}
	lines = append(lines, "", colorize.CyanString(heading+":"))
	return append(lines, wrapText(text, infoWidth())...)
}

func displaySummary(cat *catalog.Catalog) {
	fp, err := cat.Fingerprint()
	if err != nil {
		logger.Log.WithError(err).Warn("can't fingerprint catalog")
	}

	fmt.Println()
	fmt.Println(label("Game") + value("%s", cat.Name()))
	if cat.Extension() != "" {
		fmt.Println(label("Extension") + value("%s", cat.Extension()))
	}
	fmt.Println(label("Fingerprint") + value("%s", fp))
	fmt.Println(label("Tile size") + value("%s", cat.TileSize()))
	fmt.Println(label("Square size") + value("%s", cat.SquareSize()))
	fmt.Println()

	rows := []struct {
		name  string
		count int
	}{
		{"Square types", len(cat.SquareTypes())},
		{"Tokens", len(cat.Tokens())},
		{"Templates", len(cat.Templates())},
		{"Dungeon", len(cat.DungeonCards())},
		{"Encounters", len(cat.Encounters())},
		{"Treasures", len(cat.Treasures())},
		{"Powers", len(cat.Powers())},
		{"Skills", len(cat.Skills())},
		{"Heroes", len(cat.Heroes())},
		{"Monsters", len(cat.Monsters())},
	}
	for _, row := range rows {
		fmt.Println(label(row.name) + value("%d", row.count))
	}
	fmt.Println()
}

// imageFileToAnsi decodes an image file and converts it to ANSI art
func imageFileToAnsi(imagePath string) (string, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	// keep the aspect ratio; a character cell shows two pixel rows
	width := 32
	b := img.Bounds()
	height := width * b.Dy() / max(b.Dx(), 1) / 2
	return imageToAnsi(img, width, max(height, 1)), nil
}

// imageToAnsi converts an image to ANSI art
func imageToAnsi(img image.Image, width, height int) string {
	// Resize image to desired dimensions (doubled for half-block characters)
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			// Get the four pixels that will make up one character cell
			col1, _ := colorful.MakeColor(getColorAt(resized, x, y))
			col2, _ := colorful.MakeColor(getColorAt(resized, x+1, y))
			col3, _ := colorful.MakeColor(getColorAt(resized, x, y+1))
			col4, _ := colorful.MakeColor(getColorAt(resized, x+1, y+1))

			// Top pixels as foreground, bottom pixels as background
			fg := averageColor(col1, col2)
			bg := averageColor(col3, col4)
			buffer.WriteString(ansiColorString('▀', fg, bg))
		}
		buffer.WriteString("\n")
	}
	return buffer.String()
}

// getColorAt returns the color at a specific coordinate
func getColorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255} // Return black for out-of-bounds
}

// averageColor calculates the average of multiple colors
func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

// ansiColorString formats a character with 24-bit ANSI color codes
func ansiColorString(char rune, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.Clamped().RGB255()
	r2, g2, b2 := bg.Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		r1, g1, b1, r2, g2, b2, char)
}

// terminalWidth returns the width of stdout, or 80 if it isn't a terminal
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// infoWidth is the room left for text beside a typical piece of art
func infoWidth() int {
	return max(terminalWidth()-40, 20)
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40 // Use a sensible default if width is too small
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

// displayEntry prints art on the left and info on the right
func displayEntry(infoLines []string, art, gameName string) {
	art = strings.TrimRight(art, "\n")
	var artLines []string
	if art != "" {
		artLines = strings.Split(art, "\n")
	}
	maxArtWidth := 0
	for _, line := range artLines {
		maxArtWidth = max(maxArtWidth, len([]rune(stripAnsi(line))))
	}

	infoLines = append([]string{label("Game") + value("%s", gameName)}, infoLines...)

	spacing := 4
	infoStartCol := maxArtWidth + spacing

	fmt.Println()
	for i := 0; i < max(len(artLines), len(infoLines)); i++ {
		fmt.Print("  ")
		if i < len(artLines) {
			fmt.Print(artLines[i])
			visibleWidth := len([]rune(stripAnsi(artLines[i])))
			fmt.Print(strings.Repeat(" ", infoStartCol-visibleWidth))
		} else {
			fmt.Print(strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			fmt.Print(infoLines[i])
		}
		fmt.Println()
	}
	fmt.Println()
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
