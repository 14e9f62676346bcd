package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	. "vellum"
)

// Chat-style demo: sent messages graduate to the terminal's native
// scrollback while the prompt, spinner and completion popup stay live at
// the bottom. Scroll back with your terminal after sending a few messages.

type message struct {
	id   int
	from string
	body string
}

var commands = []PopupItem{
	{Label: "/help", Description: "show available commands"},
	{Label: "/quit", Description: "leave the chat"},
	{Label: "/clear", Description: "clear history"},
	{Label: "/theme dark", Description: "switch to the dark theme"},
	{Label: "/theme light", Description: "switch to the light theme"},
}

func main() {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "chatdemo: not a terminal:", err)
		os.Exit(1)
	}
	defer term.Restore(fd, oldState)

	width, height, err := term.GetSize(fd)
	if err != nil {
		width, height = 80, 24
	}

	planner := NewFramePlanner(width, height)
	planner.SetRenderer(Renderer{CRLF: true})
	theme := ThemeDark

	var (
		messages []message
		input    string
		cursor   int
		nextID   = 1
		thinking = false
		frame    = 0
		prevRows = 0
	)

	prevCur := 0
	draw := func() {
		tree := buildTree(messages, input, cursor, frame, thinking, theme)
		snap := planner.Plan(tree)

		// Erase the previous live viewport: down from the input row to the
		// bottom, up to the viewport's first row, clear to end of screen.
		if prevRows > 0 {
			if prevCur > 0 {
				fmt.Printf("\x1b[%dB", prevCur)
			}
			if prevRows > 1 {
				fmt.Printf("\x1b[%dA", prevRows-1)
			}
		}
		fmt.Print("\r\x1b[J")

		// Graduated history scrolls away above the viewport. The driver
		// repaints from a fresh line each frame, so the delta's leading
		// break is already materialized.
		if snap.StdoutDelta != "" {
			fmt.Print(strings.TrimPrefix(snap.StdoutDelta, "\r\n"))
			fmt.Print("\r\n")
		}
		fmt.Print(snap.Viewport.Content)
		prevRows = snap.Trace.VisualRows

		prevCur = 0
		if c := snap.Viewport.Cursor; c.Visible {
			if c.RowFromEnd > 0 {
				fmt.Printf("\x1b[%dA", c.RowFromEnd)
			}
			fmt.Printf("\r\x1b[%dC", c.Col)
			prevCur = c.RowFromEnd
		}
	}

	ticker := time.NewTicker(120 * time.Millisecond)
	defer ticker.Stop()
	keys := make(chan byte, 16)
	go func() {
		buf := make([]byte, 1)
		for {
			if n, err := os.Stdin.Read(buf); err != nil || n == 0 {
				close(keys)
				return
			}
			keys <- buf[0]
		}
	}()

	draw()
	for {
		select {
		case <-ticker.C:
			frame++
			if thinking {
				draw()
			}
		case b, ok := <-keys:
			if !ok {
				return
			}
			switch b {
			case 3, 27: // Ctrl+C, Esc
				fmt.Print("\r\n")
				return
			case 13: // Enter
				if strings.TrimSpace(input) == "" {
					continue
				}
				if input == "/quit" {
					fmt.Print("\r\n")
					return
				}
				messages = append(messages, message{id: nextID, from: "you", body: input})
				nextID++
				input = ""
				cursor = 0
				thinking = true
				time.AfterFunc(900*time.Millisecond, func() { keys <- 1 })
			case 1: // bot reply due
				messages = append(messages, message{id: nextID, from: "bot", body: fmt.Sprintf("ack #%d", nextID)})
				nextID++
				thinking = false
			case 127, 8: // Backspace
				if cursor > 0 {
					runes := []rune(input)
					input = string(runes[:cursor-1]) + string(runes[cursor:])
					cursor--
				}
			default:
				if b >= 32 {
					runes := []rune(input)
					input = string(runes[:cursor]) + string(b) + string(runes[cursor:])
					cursor++
				}
			}
			draw()
		}
	}
}

func buildTree(messages []message, input string, cursor, frame int, thinking bool, theme Theme) Node {
	children := []Node{
		Scrollback("banner",
			Styled("chatdemo", theme.Accent.Bold()),
			Styled("Type a message and press Enter. / for commands, Esc to quit.", theme.Muted),
		),
	}
	for _, m := range messages {
		label := Styled(m.from+": ", theme.Accent)
		if m.from == "bot" {
			label = Styled(m.from+": ", theme.Muted)
		}
		children = append(children, Scrollback(
			fmt.Sprintf("msg-%s-%d", m.from, m.id),
			Row(label, Text(m.body)),
		))
	}

	var status Node = Empty
	if thinking {
		status = Spinner(frame, "thinking").WithStyle(theme.Muted)
	}

	prompt := Col(
		Row(
			Styled("> ", theme.Accent),
			Input(input, cursor).WithPlaceholder("say something"),
		),
	).WithBorder(BorderRounded).WithStyle(theme.Border)

	children = append(children, status, prompt)

	if strings.HasPrefix(input, "/") {
		var items []PopupItem
		for _, c := range commands {
			if strings.HasPrefix(c.Label, input) {
				items = append(items, c)
			}
		}
		if len(items) > 0 {
			popup := Popup(items, 0, 4).WithStyles(theme.Base, theme.Accent.Bold())
			children = append(children, Overlay(popup, FromBottom(3)))
		}
	}

	return Col(children...)
}
