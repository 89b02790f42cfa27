package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/felixgeelhaar/codelearn/internal/config"
)

// cmdStart starts the daemon in the background
func cmdStart() error {
	c := newClient(daemonAddr())
	if c.healthy() {
		okColor.Println("✓ Daemon is already running")
		return nil
	}

	dir, err := config.EnsureDir()
	if err != nil {
		return fmt.Errorf("setup codelearn directory: %w", err)
	}

	daemonPath, err := findDaemonBinary()
	if err != nil {
		return fmt.Errorf("find daemon binary: %w", err)
	}

	cmd := exec.Command(daemonPath)
	cmd.Dir = dir
	cmd.Stdout = nil
	cmd.Stderr = nil
	configureDaemonProcess(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}

	fmt.Print("Starting daemon...")
	for i := 0; i < 30; i++ {
		time.Sleep(100 * time.Millisecond)
		if c.healthy() {
			okColor.Println(" ✓")
			fmt.Printf("Daemon running at %s\n", c.baseURL)
			return nil
		}
		fmt.Print(".")
	}

	failColor.Println(" ✗")
	return fmt.Errorf("daemon failed to start (check logs with 'codelearn logs')")
}

// cmdStop stops the daemon
func cmdStop() error {
	c := newClient(daemonAddr())
	if !c.healthy() {
		fmt.Println("Daemon is not running")
		return nil
	}

	dir, err := config.Dir()
	if err != nil {
		return err
	}

	pid, err := readPID(filepath.Join(dir, pidFile))
	if err != nil {
		return err
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find process: %w", err)
	}

	fmt.Print("Stopping daemon...")
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("send signal: %w", err)
	}

	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		if !c.healthy() {
			okColor.Println(" ✓")
			return nil
		}
		fmt.Print(".")
	}

	failColor.Println(" ✗")
	return fmt.Errorf("daemon did not stop gracefully")
}

func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read PID file: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse PID: %w", err)
	}
	return pid, nil
}

// daemonStatus is the body of /v1/status
type daemonStatus struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	Sessions  int    `json:"sessions"`
	Exercises int    `json:"exercises"`
	Tutorials int    `json:"tutorials"`
	Storage   string `json:"storage"`
	Notify    string `json:"notify"`
	Tracing   bool   `json:"tracing"`
}

// cmdStatus shows daemon status
func cmdStatus() error {
	c := newClient(daemonAddr())
	if !c.healthy() {
		fmt.Println("Status: " + failColor.Sprint("stopped"))
		return nil
	}

	var status daemonStatus
	if err := c.get("/v1/status", nil, &status); err != nil {
		return fmt.Errorf("get status: %w", err)
	}

	fmt.Printf("Status:    %s\n", okColor.Sprint(status.Status))
	fmt.Printf("Version:   %s\n", status.Version)
	fmt.Printf("Uptime:    %s\n", status.Uptime)
	fmt.Printf("Sessions:  %d\n", status.Sessions)
	fmt.Printf("Content:   %d exercises, %d tutorials\n", status.Exercises, status.Tutorials)
	fmt.Printf("Storage:   %s\n", status.Storage)
	fmt.Printf("Notify:    %s\n", status.Notify)
	fmt.Printf("Tracing:   %t\n", status.Tracing)
	fmt.Printf("Address:   %s\n", c.baseURL)
	return nil
}

// cmdLogs shows the tail of the daemon log
func cmdLogs() error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}

	logPath := filepath.Join(dir, "logs", "codelearnd.log")
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		fmt.Println("No log file found. Start the daemon first.")
		return nil
	}

	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	// Seek back ~4KB for recent logs
	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat log file: %w", err)
	}
	offset := max(info.Size()-4096, 0)
	_, _ = file.Seek(offset, 0)

	reader := bufio.NewReader(file)
	if offset > 0 {
		// Skip the partial first line
		_, _ = reader.ReadString('\n')
	}

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		fmt.Println(scanner.Text())
	}
	return scanner.Err()
}

// cmdConfig prints the effective configuration
func cmdConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}

	headColor.Println("Configuration")
	fmt.Println(dimColor.Sprint(path))

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// findDaemonBinary locates the codelearnd binary
func findDaemonBinary() (string, error) {
	if path, err := exec.LookPath("codelearnd"); err == nil {
		return path, nil
	}

	if self, err := os.Executable(); err == nil {
		path := filepath.Join(filepath.Dir(self), "codelearnd")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	for _, path := range []string{
		"/usr/local/bin/codelearnd",
		"./codelearnd",
		"./cmd/codelearnd/codelearnd",
	} {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("codelearnd binary not found (build with 'go build ./cmd/codelearnd')")
}
