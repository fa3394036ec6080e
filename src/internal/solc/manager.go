package solc

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
)

// Manager 查找本机已安装的 solc 版本（solc-select 与 py-solc-x 的安装目录）
type Manager struct {
	home string

	mu        sync.RWMutex
	installed map[string]string // version -> solc path
	scanned   bool
}

var (
	defaultManager *Manager
	once           sync.Once
)

func GetManager() *Manager {
	once.Do(func() {
		home, _ := os.UserHomeDir()
		defaultManager = NewManager(home)
	})
	return defaultManager
}

// NewManager 以 home 作为用户目录，便于测试
func NewManager(home string) *Manager {
	return &Manager{home: home, installed: make(map[string]string)}
}

// Installed 返回已安装版本，从高到低排序
func (m *Manager) Installed() []string {
	m.scan()

	m.mu.RLock()
	defer m.mu.RUnlock()
	versions := make([]*semver.Version, 0, len(m.installed))
	for raw := range m.installed {
		if v, err := semver.NewVersion(raw); err == nil {
			versions = append(versions, v)
		}
	}
	sort.Sort(sort.Reverse(semver.Collection(versions)))

	out := make([]string, 0, len(versions))
	for _, v := range versions {
		out = append(out, v.String())
	}
	return out
}

// Resolve 选出满足全部约束的最高已安装版本，返回版本号与二进制路径
func (m *Manager) Resolve(constraints []string) (string, string, error) {
	for _, version := range m.Installed() {
		matched := true
		for _, c := range constraints {
			ok, err := Satisfies(c, version)
			if err != nil {
				return "", "", err
			}
			if !ok {
				matched = false
				break
			}
		}
		if matched {
			m.mu.RLock()
			path := m.installed[version]
			m.mu.RUnlock()
			return version, path, nil
		}
	}
	return "", "", fmt.Errorf("no installed solc satisfies %q", strings.Join(constraints, " "))
}

func (m *Manager) scan() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scanned || m.home == "" {
		return
	}
	m.scanned = true

	// solc-select: ~/.solc-select/artifacts/solc-{version}/solc-{version}
	artifacts := filepath.Join(m.home, ".solc-select", "artifacts")
	if entries, err := os.ReadDir(artifacts); err == nil {
		for _, e := range entries {
			version, ok := strings.CutPrefix(e.Name(), "solc-")
			if !ok || !e.IsDir() {
				continue
			}
			bin := "solc-" + version
			if runtime.GOOS == "windows" {
				bin += ".exe"
			}
			path := filepath.Join(artifacts, e.Name(), bin)
			if isExecutable(path) {
				m.installed[version] = path
			}
		}
	}

	// py-solc-x: ~/.solcx/solc-v{version}
	solcx := filepath.Join(m.home, ".solcx")
	if entries, err := os.ReadDir(solcx); err == nil {
		for _, e := range entries {
			version, ok := strings.CutPrefix(e.Name(), "solc-v")
			if !ok {
				continue
			}
			path := filepath.Join(solcx, e.Name())
			if e.IsDir() {
				// macOS 特殊路径
				path = filepath.Join(path, "bin", "solc")
			}
			if _, seen := m.installed[version]; !seen && isExecutable(path) {
				m.installed[version] = path
			}
		}
	}
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	// Windows 上所有文件都可以执行，只需检查文件存在
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode()&0111 != 0
}
