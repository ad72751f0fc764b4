// devcontainers.go
//
// Storefront and admin console service for Vortex streaming and gaming subscriptions
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of vortex-console.
// vortex-console is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// vortex-console is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with vortex-console.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package devcontainers starts a database and a console container for local
// development and integration tests. Settings come from the environment,
// usually loaded from a .env file.
package devcontainers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/localnerve/vortex-console/data"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

const consoleImage = "vortex-console-test:latest"

// Options select what to start. Zero values are filled from the environment.
type Options struct {
	DBType         string
	DBImage        string
	DBAlias        string
	DBPort         string
	RootPassword   string
	Database       string
	User           string
	Password       string
	ConsolePort    string
	BuildContext   string
	Debug          bool
	SkipConsole    bool
	StartupTimeout time.Duration
}

// OptionsFromEnv reads the same variables the console itself uses
func OptionsFromEnv() Options {
	return Options{
		DBType:       getEnv("DB_TYPE", "mariadb"),
		DBImage:      getEnv("DB_IMAGE", "mariadb:11"),
		DBAlias:      getEnv("DB_HOST", "db"),
		DBPort:       getEnv("DB_PORT", "3306"),
		RootPassword: getEnv("DB_ROOT_PASSWORD", "rootpass"),
		Database:     getEnv("DB_APP_DATABASE", "vortex"),
		User:         getEnv("DB_APP_USER", "vortex"),
		Password:     getEnv("DB_APP_PASSWORD", "vortex"),
		ConsolePort:  getEnv("PORT", "3000"),
		BuildContext: getEnv("TESTCONTAINERS_BUILD_CONTEXT", "../.."),
		Debug:        os.Getenv("DEBUG_CONTAINER") == "true",
	}
}

// Containers holds everything Start created
type Containers struct {
	Network        *testcontainers.DockerNetwork
	DB             testcontainers.Container
	ConsoleBuilder testcontainers.Container
	Console        testcontainers.Container
	DBHost         string
	DBPort         nat.Port
	ConsoleURL     string
	log            zerolog.Logger
}

// Terminate stops the containers in reverse start order
func (tc *Containers) Terminate(ctx context.Context) error {
	var errs []error
	for _, c := range []struct {
		name string
		c    testcontainers.Container
	}{
		{"console", tc.Console},
		{"console builder", tc.ConsoleBuilder},
		{"database", tc.DB},
	} {
		if c.c == nil {
			continue
		}
		if err := c.c.Terminate(ctx); err != nil {
			tc.log.Error().Err(err).Msgf("Failed to terminate %s", c.name)
			errs = append(errs, err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			tc.log.Error().Err(err).Msg("Failed to remove network")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Start brings up the database, prepares it, and then the console unless
// opts.SkipConsole is set. On failure everything already started is
// terminated.
func Start(ctx context.Context, opts Options, log zerolog.Logger) (tc *Containers, err error) {
	if opts.StartupTimeout == 0 {
		opts.StartupTimeout = 60 * time.Second
	}
	tc = &Containers{log: log}
	defer func() {
		if err != nil {
			_ = tc.Terminate(context.Background())
			tc = nil
		}
	}()

	nw, err := network.New(ctx)
	if err != nil {
		return tc, fmt.Errorf("failed to create network: %w", err)
	}
	tc.Network = nw

	if err := tc.startDB(ctx, opts); err != nil {
		return tc, err
	}
	if opts.SkipConsole {
		return tc, nil
	}
	if err := tc.startConsole(ctx, opts); err != nil {
		return tc, err
	}
	log.Info().Str("url", tc.ConsoleURL).Msg("Console container started")
	return tc, nil
}

func (tc *Containers) startDB(ctx context.Context, opts Options) error {
	tcpPort, err := nat.NewPort("tcp", opts.DBPort)
	if err != nil {
		return fmt.Errorf("failed to create DB port: %w", err)
	}

	db, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        opts.DBImage,
			ExposedPorts: []string{string(tcpPort)},
			Env:          dbInitEnv(opts),
			WaitingFor:   wait.ForListeningPort(tcpPort).WithStartupTimeout(opts.StartupTimeout),
			Networks:     []string{tc.Network.Name},
			NetworkAliases: map[string][]string{
				tc.Network.Name: {opts.DBAlias},
			},
		},
		Started: true,
	})
	if err != nil {
		return fmt.Errorf("failed to start database: %w", err)
	}
	tc.DB = db

	if tc.DBHost, err = db.Host(ctx); err != nil {
		return err
	}
	if tc.DBPort, err = db.MappedPort(ctx, tcpPort); err != nil {
		return err
	}
	tc.log.Info().Str("host", tc.DBHost).Str("port", tc.DBPort.Port()).Msg("Database container started")

	switch opts.DBType {
	case "mysql", "mariadb":
		return tc.initMariaDB(ctx, opts)
	}
	// postgres creates the database and user from its environment, the
	// console migrates the table itself
	return nil
}

func dbInitEnv(opts Options) map[string]string {
	switch opts.DBType {
	case "postgres":
		return map[string]string{
			"POSTGRES_PASSWORD": opts.Password,
			"POSTGRES_USER":     opts.User,
			"POSTGRES_DB":       opts.Database,
		}
	default:
		return map[string]string{
			"MYSQL_ROOT_PASSWORD": opts.RootPassword,
			"MYSQL_DATABASE":      opts.Database,
			"MYSQL_USER":          opts.User,
			"MYSQL_PASSWORD":      opts.Password,
		}
	}
}

func (tc *Containers) initMariaDB(ctx context.Context, opts Options) error {
	dsn := fmt.Sprintf("root:%s@tcp(%s:%s)/", opts.RootPassword, tc.DBHost, tc.DBPort.Port())
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to MariaDB for setup: %w", err)
	}
	defer db.Close()

	// The port listens before the server accepts logins
	for i := 0; i < 30; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
	}

	steps := []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", opts.Database),
		fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'%%' IDENTIFIED BY '%s'", opts.User, opts.Password),
		fmt.Sprintf("USE `%s`", opts.Database),
	}
	for _, q := range steps {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), q)
		}
	}

	// USE only holds for one pooled connection
	db.SetMaxOpenConns(1)
	if err := executeSQL(db, data.InitdbMariaDBTables); err != nil {
		return fmt.Errorf("failed to execute tables init sql: %w", err)
	}
	if err := executeSQL(db, privilegesFor(opts.User)); err != nil {
		return fmt.Errorf("failed to execute privileges init sql: %w", err)
	}
	return nil
}

// privilegesFor points the privileges script at the configured user
func privilegesFor(user string) string {
	return strings.ReplaceAll(data.InitdbMariaDBPrivileges, "'vortex'@", "'"+user+"'@")
}

func (tc *Containers) startConsole(ctx context.Context, opts Options) error {
	tcpPort, err := nat.NewPort("tcp", opts.ConsolePort)
	if err != nil {
		return fmt.Errorf("failed to create console port: %w", err)
	}

	exposed := []string{string(tcpPort)}
	if opts.Debug {
		exposed = append(exposed, "2345/tcp")
	}

	hostConfigModifier := func(hostConfig *container.HostConfig) {
		if opts.Debug {
			hostConfig.PortBindings = nat.PortMap{
				"2345/tcp": []nat.PortBinding{
					{HostIP: "127.0.0.1", HostPort: "2345"},
				},
			}
			hostConfig.CapAdd = []string{"SYS_PTRACE"}
			hostConfig.SecurityOpt = []string{"apparmor:unconfined"}
		}
	}

	var waitStrategy wait.Strategy = wait.ForHTTP("/health").WithPort(tcpPort).WithStartupTimeout(30 * time.Second)
	if opts.Debug {
		waitStrategy = wait.ForLog("API server listening at: [::]:2345").WithStartupTimeout(5 * time.Minute)
	}

	req := testcontainers.ContainerRequest{
		ExposedPorts: exposed,
		Env: map[string]string{
			"APP_ENV":         "development",
			"DB_TYPE":         opts.DBType,
			"DB_HOST":         opts.DBAlias,
			"DB_PORT":         opts.DBPort,
			"DB_APP_DATABASE": opts.Database,
			"DB_APP_USER":     opts.User,
			"DB_APP_PASSWORD": opts.Password,
			"PORT":            opts.ConsolePort,
		},
		HostConfigModifier: hostConfigModifier,
		WaitingFor:         waitStrategy,
		Networks:           []string{tc.Network.Name},
	}
	if opts.Debug {
		req.Entrypoint = []string{
			"/usr/local/bin/dlv",
			"--listen=:2345",
			"--headless=true",
			"--api-version=2",
			"--accept-multiclient",
			"exec",
			"./vortex-console",
		}
	}

	exists, err := imageExists(ctx, consoleImage)
	if err != nil {
		return fmt.Errorf("failed to check if image exists: %w", err)
	}
	if exists {
		tc.log.Info().Str("image", consoleImage).Msg("Image exists, reusing")
		req.Image = consoleImage
	} else if err := tc.buildConsole(ctx, opts, &req); err != nil {
		return err
	}

	console, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return fmt.Errorf("failed to start console: %w", err)
	}
	tc.Console = console

	host, err := console.Host(ctx)
	if err != nil {
		return err
	}
	port, err := console.MappedPort(ctx, tcpPort)
	if err != nil {
		return err
	}
	tc.ConsoleURL = fmt.Sprintf("http://%s:%s", host, port.Port())
	return nil
}

// buildConsole builds the builder stage first so its layers are cached, then
// points req at the runtime stage
func (tc *Containers) buildConsole(ctx context.Context, opts Options, req *testcontainers.ContainerRequest) error {
	tc.log.Info().Str("image", consoleImage).Msg("Image does not exist, building")

	sessionID := uuid.New().String()
	buildArgs := map[string]*string{
		"RESOURCE_REAPER_SESSION_ID": &sessionID,
	}
	if opts.Debug {
		debug := "true"
		buildArgs["DEBUG"] = &debug
	}

	builder, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			FromDockerfile: testcontainers.FromDockerfile{
				Context:    opts.BuildContext,
				Dockerfile: "Dockerfile",
				Repo:       "vortex-console-test-builder",
				Tag:        "latest",
				BuildArgs:  buildArgs,
				BuildOptionsModifier: func(o *build.ImageBuildOptions) {
					o.Target = "builder"
				},
				PrintBuildLog: true,
			},
		},
		Started: false,
	})
	if err != nil {
		return fmt.Errorf("failed to build console builder: %w", err)
	}
	tc.ConsoleBuilder = builder

	repo, tag, _ := strings.Cut(consoleImage, ":")
	req.FromDockerfile = testcontainers.FromDockerfile{
		Context:    opts.BuildContext,
		Dockerfile: "Dockerfile",
		Repo:       repo,
		Tag:        tag,
		KeepImage:  true,
		BuildArgs:  buildArgs,
		BuildOptionsModifier: func(o *build.ImageBuildOptions) {
			o.Target = "runtime"
		},
		PrintBuildLog: true,
	}
	return nil
}

func imageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, img := range images {
		for _, tag := range img.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}
	return false, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
