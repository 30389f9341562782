// Command holdem-cli plays at a Hold'em room from the terminal.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"

	"github.com/gorilla/websocket"
	"github.com/lazharichir/holdem/server/events"
	"github.com/pterm/pterm"
)

func main() {
	addr := flag.String("addr", "localhost:7777", "server address")
	room := flag.String("room", "", "room id")
	player := flag.String("player", "", "player id")
	name := flag.String("name", "", "display name")
	flag.Parse()

	if *room == "" || *player == "" {
		pterm.Error.Println("-room and -player are required")
		flag.Usage()
		os.Exit(2)
	}

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws/" + *room + "/" + *player}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		pterm.Error.Printfln("Could not connect to %s: %v", u.String(), err)
		os.Exit(1)
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		readLoop(conn, *player)
	}()

	join, _ := json.Marshal(map[string]string{"type": "join", "name": *name})
	if err := conn.WriteMessage(websocket.TextMessage, join); err != nil {
		pterm.Error.Printfln("Could not join: %v", err)
		os.Exit(1)
	}

	pterm.Info.Println("Commands: start, check, call, fold, bet N, raise N, allin, state, q")

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-done:
			pterm.Warning.Println("Connection closed")
			return

		case line, ok := <-lines:
			if !ok {
				return
			}
			msg, quit, err := parseInput(line)
			if quit {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err != nil {
				pterm.Warning.Println(err)
				continue
			}
			if msg == nil {
				continue
			}
			data, _ := json.Marshal(msg)
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				pterm.Error.Printfln("Send failed: %v", err)
				return
			}
		}
	}
}

func readLoop(conn *websocket.Conn, playerID string) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ce, ok := err.(*websocket.CloseError); ok && ce.Text != "" {
				pterm.Error.Println(ce.Text)
			}
			return
		}

		var env events.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			pterm.Warning.Printfln("Unreadable message: %s", data)
			continue
		}

		switch env.Type {
		case events.TypeError:
			pterm.Error.Println(env.Message)
		case events.TypeGameState:
			if env.Data != nil {
				fmt.Println(renderState(*env.Data, playerID))
			}
		}
	}
}
