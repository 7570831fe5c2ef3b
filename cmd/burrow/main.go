package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/yago-123/burrow-rendez/cmd/common"
	"github.com/yago-123/burrow-rendez/pkg/rendez/client"
	"github.com/yago-123/burrow-rendez/pkg/rendez/types"
	"github.com/yago-123/burrow-rendez/pkg/util"
)

const (
	defaultServerURL    = "http://localhost:8000"
	defaultTimeout      = 10 * time.Second
	defaultWaitInterval = 1 * time.Second
)

func registerGlobalFlags(fset *flag.FlagSet) {
	flag.VisitAll(func(f *flag.Flag) {
		fset.Var(f.Value, f.Name, f.Usage)
	})
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <register|lookup|wait|whoami> [flags]\n", os.Args[0])
}

func main() {
	serverURL := flag.String("server", defaultServerURL, "Rendezvous server base URL")
	codeField := flag.String("code-field", types.DefaultCodeField, "JSON field carrying the peer code")
	logLevel := flag.String("loglevel", "warn", "Log level")
	timeout := flag.Duration("timeout", defaultTimeout, "Overall timeout of the command")

	registerCmd := flag.NewFlagSet("register", flag.ExitOnError)
	registerCode := registerCmd.String("code", "", "Peer code to register")
	registerGlobalFlags(registerCmd)

	lookupCmd := flag.NewFlagSet("lookup", flag.ExitOnError)
	lookupCode := lookupCmd.String("code", "", "Peer code to resolve")
	registerGlobalFlags(lookupCmd)

	waitCmd := flag.NewFlagSet("wait", flag.ExitOnError)
	waitCode := waitCmd.String("code", "", "Peer code to wait for")
	waitInterval := waitCmd.Duration("interval", defaultWaitInterval, "Polling interval")
	registerGlobalFlags(waitCmd)

	whoamiCmd := flag.NewFlagSet("whoami", flag.ExitOnError)
	stunServers := whoamiCmd.String("stun", strings.Join(util.DefaultSTUNServers, ","), "Comma separated STUN servers")
	registerGlobalFlags(whoamiCmd)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]

	var fset *flag.FlagSet
	switch cmd {
	case "register":
		fset = registerCmd
	case "lookup":
		fset = lookupCmd
	case "wait":
		fset = waitCmd
	case "whoami":
		fset = whoamiCmd
	default:
		usage()
		log.Fatalf("Invalid subcommand '%s'", cmd)
	}
	_ = fset.Parse(args)

	_, logger, err := common.NewLogger(*logLevel, common.LogFormatText)
	if err != nil {
		log.Fatalf("Invalid logging setup: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	rendez := client.NewRendezvous(*serverURL,
		client.WithCodeField(*codeField),
		client.WithLogger(logger),
	)

	switch cmd {
	case "register":
		requireCode(*registerCode)
		addr, errReg := rendez.Register(ctx, *registerCode)
		exitOnErr(errReg)
		fmt.Printf("registered %s -> %s\n", *registerCode, addr)
	case "lookup":
		requireCode(*lookupCode)
		addr, errLookup := rendez.Lookup(ctx, *lookupCode)
		exitOnErr(errLookup)
		fmt.Println(addr)
	case "wait":
		requireCode(*waitCode)
		addr, errWait := rendez.WaitForPeer(ctx, *waitCode, *waitInterval)
		exitOnErr(errWait)
		fmt.Println(addr)
	case "whoami":
		endpoint, errSTUN := util.GetPublicEndpoint(ctx, splitList(*stunServers))
		exitOnErr(errSTUN)
		fmt.Println(endpoint.String())
	}
}

func requireCode(code string) {
	if code == "" {
		log.Fatal("Peer code not specified, use -code")
	}
}

func exitOnErr(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
