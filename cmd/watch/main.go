// Command watch follows a running session's status stream and prints
// feedback updates to the terminal. Useful for watching a session from
// another machine without the dashboard.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

// status mirrors the dashboard's session status payload.
type status struct {
	SessionID    string   `json:"session_id"`
	State        string   `json:"state"`
	Continuous   bool     `json:"continuous"`
	AsanaName    string   `json:"asana_name"`
	PoseNumber   int      `json:"pose_number"`
	PoseAccuracy *float64 `json:"pose_accuracy"`
	Adjustments  []struct {
		JointName  string `json:"joint_name"`
		Adjustment string `json:"adjustment"`
		Difference string `json:"difference"`
	} `json:"adjustments"`
	LastError string `json:"last_error"`
}

func main() {
	addr := flag.String("addr", "localhost:8080", "Dashboard host:port")
	flag.Parse()

	url := fmt.Sprintf("ws://%s/ws/status", *addr)

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect %s: %v\n", url, err)
		os.Exit(1)
	}
	defer conn.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		conn.Close()
	}()

	fmt.Printf("watching %s\n", url)

	var last string
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			fmt.Println("stream closed")
			return
		}

		var s status
		if err := json.Unmarshal(data, &s); err != nil {
			continue
		}

		line := render(s)
		if line == last {
			continue
		}
		last = line
		fmt.Println(line)
	}
}

// render formats one status line; identical consecutive lines are
// suppressed by the caller.
func render(s status) string {
	accuracy := "--"
	if s.PoseAccuracy != nil {
		accuracy = fmt.Sprintf("%.0f%%", *s.PoseAccuracy)
	}

	mode := "single"
	if s.Continuous {
		mode = "continuous"
	}

	line := fmt.Sprintf("[%s] %s #%d  %s  accuracy %s",
		s.State, s.AsanaName, s.PoseNumber, mode, accuracy)

	for _, adj := range s.Adjustments {
		line += fmt.Sprintf("  | %s %s (%s)", adj.Adjustment, adj.JointName, adj.Difference)
	}
	if s.LastError != "" {
		line += "  ! " + s.LastError
	}
	return line
}
