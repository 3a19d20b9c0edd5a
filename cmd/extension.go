package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
)

const (
	EnvStorage = "MTK_STORAGE"
	EnvData    = "MTK_DATA"
	EnvUser    = "MTK_USER"
	EnvVerbose = "MTK_VERBOSE"
)

// RunExtension attempts to find and execute an external mtk-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
//
// The extension receives the resolved configuration as MTK_* environment
// variables.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "mtk-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	cfg, err := loadConfig(*configFile, dotEnv, Config{Storage: *storageKind, Data: *dataPath, User: *userName})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = append(os.Environ(),
		EnvStorage+"="+cfg.Storage,
		EnvData+"="+cfg.Data,
		EnvUser+"="+cfg.User,
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
