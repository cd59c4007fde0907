package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/scott-cotton/cli"

	"slicegen/internal/driver"
	"slicegen/internal/spec"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// reportResults prints the diagnostics of every result and logs package
// type errors at debug level.
func reportResults(cfg *MainConfig, results []driver.Result) {
	p := cfg.diagnostics()
	for _, r := range results {
		for _, e := range r.PackageErrors {
			theLog.Debug("package error", "spec", r.Spec, "error", e)
		}
		if r.Model == nil {
			continue
		}
		p.Diagnostics(&r.Model.Diagnostics, cfg.Verbose)
	}
}

// exitErr turns the errors of a run into exit code 1. Invalid spec errors
// were already printed as diagnostics; every other failure is logged. A lone
// failure that is not an invalid spec is returned unchanged.
func exitErr(err error) error {
	if err == nil {
		return nil
	}
	errs := splitErrors(err)
	if len(errs) == 1 && !errors.Is(errs[0], spec.ErrInvalidSpec) {
		return errs[0]
	}
	for _, e := range errs {
		if errors.Is(e, spec.ErrInvalidSpec) {
			theLog.Debug("invalid spec", "error", e)
			continue
		}
		theLog.Error("failed", "error", e)
	}
	return cli.ExitCodeErr(1)
}

// splitErrors flattens errors.Join trees. Invalid spec errors are leaves.
func splitErrors(err error) []error {
	j, ok := err.(interface{ Unwrap() []error })
	if !ok || slices.Contains(j.Unwrap(), spec.ErrInvalidSpec) {
		return []error{err}
	}
	var res []error
	for _, e := range j.Unwrap() {
		res = append(res, splitErrors(e)...)
	}
	return res
}
