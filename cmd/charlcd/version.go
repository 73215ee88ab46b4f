package main

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X main.buildVersion=... -X main.buildTime=...".
var buildTime, buildVersion string

func versionString() string {
	v := buildVersion
	if v == "" {
		v = "dev"
	}
	s := fmt.Sprintf("charlcd %s (%s %s/%s)", v, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if buildTime != "" {
		s += ", built " + buildTime
	}
	return s
}

func showVersion() {
	fmt.Println(versionString())
}
