package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case RegisterResult:
		o.printRegisterResult(v)
	case AuthResult:
		o.printAuthResult(v)
	case UserData:
		o.printUserData(v)
	case Me:
		o.printMe(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case MessageResult:
		fmt.Println(v.Message)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// RegisterResult response type (matches API)
type RegisterResult struct {
	Message  string `json:"message"`
	PlayerID string `json:"player_id"`
}

// AuthResult response type
type AuthResult struct {
	Token    string `json:"token"`
	PlayerID string `json:"player_id"`
}

// UserData response type
type UserData struct {
	Login        string   `json:"login"`
	Score        int      `json:"score"`
	Achievements []string `json:"achievements"`
}

// Me response type
type Me struct {
	Login        string   `json:"login"`
	PlayerID     string   `json:"player_id"`
	Score        int      `json:"score"`
	Achievements []string `json:"achievements"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Login string `json:"login"`
	Score int    `json:"score"`
}

// Leaderboard response type
type Leaderboard struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// MessageResult response type
type MessageResult struct {
	Message string `json:"message"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printRegisterResult(r RegisterResult) {
	fmt.Println(r.Message)
	fmt.Printf("Player ID: %s\n", r.PlayerID)
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("Player ID: %s\n", a.PlayerID)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printUserData(u UserData) {
	fmt.Printf("Login: %s\n", u.Login)
	fmt.Printf("Score: %d\n", u.Score)
	o.printAchievements(u.Achievements)
}

func (o *Output) printMe(m Me) {
	fmt.Printf("Login: %s\n", m.Login)
	fmt.Printf("Player ID: %s\n", m.PlayerID)
	fmt.Printf("Score: %d\n", m.Score)
	o.printAchievements(m.Achievements)
}

func (o *Output) printAchievements(achievements []string) {
	if len(achievements) == 0 {
		fmt.Println("Achievements: none")
		return
	}
	fmt.Printf("Achievements: %s\n", strings.Join(achievements, ", "))
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Leaderboard) == 0 {
		fmt.Println("Leaderboard is empty")
		return
	}
	for i, e := range l.Leaderboard {
		fmt.Printf("%2d. %s (%d)\n", i+1, e.Login, e.Score)
	}
}
