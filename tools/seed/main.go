package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Seeds a handful of demo users, friendships and workouts so the feed
// and friend flows can be exercised against a fresh database.

type Config struct {
	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
		Charset  string `yaml:"charset"`
	} `yaml:"database"`
}

type demoUser struct {
	username  string
	email     string
	firstName string
	lastName  string
	nickname  string
}

var demoUsers = []demoUser{
	{"alice", "alice@example.com", "Alice", "Anderson", "Ace"},
	{"bob", "bob@example.com", "Bob", "Baker", ""},
	{"carol", "carol@example.com", "Carol", "Clark", "CC"},
	{"dave", "dave@example.com", "Dave", "Dunn", ""},
}

func main() {
	config := loadConfig()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		config.Database.Username,
		config.Database.Password,
		config.Database.Host,
		config.Database.Port,
		config.Database.Database,
		config.Database.Charset,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Database connection test failed: %v", err)
	}

	// All demo users share the same password
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	userIDs := make([]int64, 0, len(demoUsers))
	for _, u := range demoUsers {
		result, err := db.Exec(`
			INSERT INTO user (username, email, password_hash, first_name, last_name, nickname, display_preference, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, 'first_name', NOW(), NOW())
		`, u.username, u.email, string(hash), u.firstName, u.lastName, u.nickname)
		if err != nil {
			log.Fatalf("Failed to insert user %s: %v", u.username, err)
		}
		id, _ := result.LastInsertId()
		userIDs = append(userIDs, id)
		fmt.Printf("Created user %s (id=%d)\n", u.username, id)
	}

	// alice <-> bob, alice <-> carol (dave stays a stranger)
	edges := [][2]int64{
		{userIDs[0], userIDs[1]},
		{userIDs[0], userIDs[2]},
	}
	for _, e := range edges {
		one, two := e[0], e[1]
		if one > two {
			one, two = two, one
		}
		if _, err := db.Exec(`
			INSERT INTO friend_request (requester_id, target_id, status, created_at, updated_at)
			VALUES (?, ?, 'accepted', NOW(), NOW())
		`, e[0], e[1]); err != nil {
			log.Fatalf("Failed to insert friend request: %v", err)
		}
		if _, err := db.Exec(`
			INSERT INTO friendship (user_one_id, user_two_id, created_at)
			VALUES (?, ?, NOW())
		`, one, two); err != nil {
			log.Fatalf("Failed to insert friendship: %v", err)
		}
		fmt.Printf("Created friendship %d <-> %d\n", one, two)
	}

	// A few workouts spread over the last week
	workouts := []struct {
		owner    int64
		title    string
		daysAgo  int
		activity string
		duration int
		calories int
	}{
		{userIDs[0], "Morning run", 1, "Running", 40, 380},
		{userIDs[1], "Leg day", 2, "Squats", 50, 420},
		{userIDs[2], "Pool session", 3, "Swimming", 30, 300},
		{userIDs[3], "Solo ride", 1, "Cycling", 90, 700},
	}
	for _, w := range workouts {
		start := time.Now().AddDate(0, 0, -w.daysAgo)
		result, err := db.Exec(`
			INSERT INTO workout (user_id, title, start_time, created_at, updated_at)
			VALUES (?, ?, ?, NOW(), NOW())
		`, w.owner, w.title, start)
		if err != nil {
			log.Fatalf("Failed to insert workout: %v", err)
		}
		workoutID, _ := result.LastInsertId()
		if _, err := db.Exec(`
			INSERT INTO workout_activity (workout_id, name, duration_min, calories)
			VALUES (?, ?, ?, ?)
		`, workoutID, w.activity, w.duration, w.calories); err != nil {
			log.Fatalf("Failed to insert workout activity: %v", err)
		}
		fmt.Printf("Created workout %q for user %d\n", w.title, w.owner)
	}

	fmt.Println("Done")
}

func loadConfig() *Config {
	data, err := os.ReadFile("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		log.Fatalf("Failed to parse config file: %v", err)
	}
	return &config
}
