// Command chatclient is an interactive terminal tester for the Chaos
// Rig control channel: raw terminal input, a background reader
// goroutine printing server telemetry, and a signal handler that
// restores the terminal on exit.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/lguibr/asciiring/helpers"
	"golang.org/x/net/websocket"
	"golang.org/x/sys/unix"
)

const banner = `
  ___ _                   ___ _
 / __| |_  __ _ ___ ___  | _ \ (_)__ _
| (__| ' \/ _` + "`" + ` / _ (_-< |   / |/ _` + "`" + ` |
 \___|_||_\__,_\___/__/ |_|_\_|_\__, |
                                 |___/
 vote tester
`

// term owns the controlling terminal for the vote prompt: it switches
// stdin to byte-at-a-time input on enter and puts the saved settings
// back on every exit path, including the interrupt handler.
type term struct {
	fd    int
	saved unix.Termios
}

func enterVotePrompt() (*term, error) {
	fd := int(os.Stdin.Fd())
	settings, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, err
	}
	t := &term{fd: fd, saved: *settings}

	prompt := t.saved
	// The line editor below does its own echo, editing, and Ctrl-C
	// handling, so canonical buffering and job-control signals are off.
	prompt.Lflag &^= unix.ICANON | unix.ECHO | unix.ISIG | unix.IEXTEN
	// Keystrokes arrive untranslated; flow control is off so every
	// printable byte can appear in a modifier name.
	prompt.Iflag &^= unix.ICRNL | unix.IXON | unix.BRKINT | unix.INPCK | unix.ISTRIP
	// 8-bit characters without parity, raw output.
	prompt.Cflag = prompt.Cflag&^(unix.CSIZE|unix.PARENB) | unix.CS8
	prompt.Oflag &^= unix.OPOST

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &prompt); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *term) restore() {
	_ = unix.IoctlSetTermios(t.fd, unix.TCSETS, &t.saved)
}

func main() {
	addr := "ws://localhost:8080/control"
	if v := os.Getenv("CHAOSRIG_CONTROL_ADDR"); v != "" {
		addr = v
	}

	conn, err := websocket.Dial(addr, "", "http://localhost/")
	if err != nil {
		fmt.Println("Error connecting to control channel:", err)
		return
	}
	defer conn.Close()

	go func() {
		helpers.ClearScreen()
		fmt.Print(banner)
		fmt.Println("Type a modifier name + Enter to vote for it as the winner.")
		fmt.Println("Commands: /remove NAME  /reset  /game  /nummods N  /exit  /quit\r")
		for {
			var raw json.RawMessage
			if err := websocket.JSON.Receive(conn, &raw); err != nil {
				fmt.Println("Error reading from server:", err)
				return
			}
			fmt.Printf("\r\n< %s\r\n> ", string(raw))
		}
	}()

	t, err := enterVotePrompt()
	if err != nil {
		fmt.Println("Error setting raw mode:", err)
		return
	}
	defer t.restore()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		t.restore()
		os.Exit(0)
	}()

	readLines(conn, t)
}

// readLines implements the raw-mode line editor: it buffers bytes
// until Enter, then dispatches the line to sendLine.
func readLines(conn *websocket.Conn, t *term) {
	var line strings.Builder
	one := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(one)
		if err != nil || n == 0 {
			return
		}
		switch one[0] {
		case '\r', '\n':
			text := strings.TrimSpace(line.String())
			line.Reset()
			if text == "" {
				fmt.Print("\r\n> ")
				continue
			}
			if strings.EqualFold(text, "/quit") {
				t.restore()
				os.Exit(0)
			}
			sendLine(conn, text)
			fmt.Print("\r\n> ")
		case 127, 8: // backspace
			if line.Len() > 0 {
				s := line.String()
				line.Reset()
				line.WriteString(s[:len(s)-1])
				fmt.Print("\b \b")
			}
		case 3: // Ctrl-C
			t.restore()
			os.Exit(0)
		default:
			line.WriteByte(one[0])
			fmt.Printf("%c", one[0])
		}
	}
}

func sendLine(conn *websocket.Conn, text string) {
	frame := map[string]interface{}{}

	switch {
	case text == "/reset":
		frame["reset"] = true
	case text == "/game":
		frame["game"] = true
	case strings.HasPrefix(text, "/remove "):
		frame["remove"] = strings.TrimSpace(strings.TrimPrefix(text, "/remove "))
	case strings.HasPrefix(text, "/newgame "):
		frame["newgame"] = strings.TrimSpace(strings.TrimPrefix(text, "/newgame "))
	case strings.HasPrefix(text, "/nummods "):
		if n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(text, "/nummods "))); err == nil {
			frame["nummods"] = n
		}
	case text == "/exit":
		frame["exit"] = true
	default:
		frame["winner"] = text
	}

	if err := websocket.JSON.Send(conn, frame); err != nil {
		fmt.Printf("\r\nError sending command: %v\r\n> ", err)
	}
}
