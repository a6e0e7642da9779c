// Command wavectl is a demonstration host for the wave engine: a cobra
// CLI exercising the five operations spec.md §6 names (incrby, get,
// total, reset, debug) against an in-process internal/store.Store. It is
// not the wire/host contract itself — see SPEC_FULL.md — just an
// operator-facing harness shaped the way the teacher's cmd/z80opt wraps
// pkg/search behind subcommands.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/fooinha/wave/internal/store"
)

func main() {
	s := store.New()

	rootCmd := &cobra.Command{
		Use:   "wavectl",
		Short: "Drive the wave engine's wv.* operations from the command line",
	}

	rootCmd.AddCommand(
		newIncrbyCmd(s),
		newGetCmd(s),
		newTotalCmd(s),
		newResetCmd(s),
		newDebugCmd(s),
	)

	if err := rootCmd.Execute(); err != nil {
		glog.Errorf("wavectl: %v", err)
		os.Exit(1)
	}
}

func nowUnix() int64 {
	return time.Now().Unix()
}

func newIncrbyCmd(s *store.Store) *cobra.Command {
	var (
		incr      int64
		ts        int64
		expireYes bool
		expireNo  bool
		window    int64
		eps       float64
		max       int64
	)

	cmd := &cobra.Command{
		Use:   "incrby <key>",
		Short: "wv.incrby: create/resize a wave as needed and add incr to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expire := store.ExpireUnset
			if expireYes {
				expire = store.ExpireYes
			} else if expireNo {
				expire = store.ExpireNo
			}

			a := store.IncrArgs{
				Key:    args[0],
				Incr:   incr,
				Ts:     ts,
				Expire: expire,
				N:      store.Unset,
				Eps:    store.UnsetEps,
				R:      store.Unset,
			}
			if cmd.Flags().Changed("window") {
				a.N = window
			}
			if cmd.Flags().Changed("epsilon") {
				a.Eps = eps
			}
			if cmd.Flags().Changed("max") {
				a.R = max
			}

			total, err := s.Incrby(a, nowUnix())
			if err != nil {
				return fmt.Errorf("incrby: %w", err)
			}
			fmt.Println(total)
			return nil
		},
	}
	cmd.Flags().Int64Var(&incr, "by", 1, "amount to add")
	cmd.Flags().Int64Var(&ts, "ts", 0, "timestamp (0 = now)")
	cmd.Flags().BoolVar(&expireYes, "expire", false, "arm auto-expire")
	cmd.Flags().BoolVar(&expireNo, "no-expire", false, "disable auto-expire")
	cmd.Flags().Int64Var(&window, "window", 60, "window size N")
	cmd.Flags().Float64Var(&eps, "epsilon", 0.05, "relative error target")
	cmd.Flags().Int64Var(&max, "max", -1, "value bound R (-1 = derive from N)")
	return cmd
}

func newGetCmd(s *store.Store) *cobra.Command {
	var (
		ts   int64
		fast bool
	)
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "wv.get: estimated sliding-window sum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := s.Get(args[0], ts, fast, nowUnix())
			if err != nil {
				return fmt.Errorf("get: %w", err)
			}
			fmt.Println(v)
			return nil
		},
	}
	cmd.Flags().Int64Var(&ts, "ts", 0, "timestamp (0 = now)")
	cmd.Flags().BoolVar(&fast, "fast", false, "use the fast midpoint estimate instead of the exact scan")
	return cmd
}

func newTotalCmd(s *store.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "total <key>",
		Short: "wv.total: raw running total mod M",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := s.Total(args[0])
			if err != nil {
				return fmt.Errorf("total: %w", err)
			}
			fmt.Println(v)
			return nil
		},
	}
}

func newResetCmd(s *store.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <key> [key...]",
		Short: "wv.reset: purge one or more waves",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := s.Reset(args, nowUnix())
			fmt.Println(n)
			return nil
		},
	}
}

func newDebugCmd(s *store.Store) *cobra.Command {
	var showLists bool
	cmd := &cobra.Command{
		Use:   "debug <key>",
		Short: "wv.debug: human-readable dump of a wave's state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := s.Debug(args[0], showLists)
			if err != nil {
				return fmt.Errorf("debug: %w", err)
			}
			for _, l := range lines {
				fmt.Println(l)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showLists, "show-lists", false, "also dump level queues and L")
	return cmd
}
