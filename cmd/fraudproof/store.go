package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jam-duna/fraudproof/access"
	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/store"
)

func newStoreCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage stored predicates and state",
	}

	var asm bool
	putCmd := &cobra.Command{
		Use:   "put-predicate <file>",
		Short: "Store a predicate and print its content address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			in := inputFlags{bytecodePath: args[0]}
			if asm {
				in = inputFlags{asmPath: args[0]}
			}
			code, err := in.bytecode(cfg)
			if err != nil {
				return err
			}
			s, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer s.Close()
			addr, err := s.PutPredicate(code)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr.Hex())
			return nil
		},
	}
	putCmd.Flags().BoolVar(&asm, "asm", false, "File is assembly source instead of hex")

	getCmd := &cobra.Command{
		Use:   "get-predicate <address>",
		Short: "Print a stored predicate as hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			s, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer s.Close()
			code, err := s.GetPredicate(common.HexToHash(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(code))
			return nil
		},
	}

	importCmd := &cobra.Command{
		Use:   "import-state <snapshot.json>",
		Short: "Persist the state entries of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			snap, err := access.LoadSnapshot(args[0])
			if err != nil {
				return err
			}
			s, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer s.Close()
			byContract := make(map[common.ContentAddress][]access.Mutation)
			var order []common.ContentAddress
			for _, e := range snap.State {
				if _, ok := byContract[e.Contract]; !ok {
					order = append(order, e.Contract)
				}
				byContract[e.Contract] = append(byContract[e.Contract], access.Mutation{Key: e.Key, Value: e.Value})
			}
			for _, c := range order {
				if err := s.ApplyMutations(c, byContract[c]); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries for %d contracts\n", len(snap.State), len(order))
			return nil
		},
	}

	getStateCmd := &cobra.Command{
		Use:   "get-state <contract> <key-word>...",
		Short: "Print the value words stored under a contract key",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStateKey(g, cmd, args, func(s *store.Store, contract common.ContentAddress, key access.Key) error {
				value, ok, err := s.GetState(contract, key)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "not found")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatWords(value))
				return nil
			})
		},
	}

	deleteStateCmd := &cobra.Command{
		Use:   "delete-state <contract> <key-word>...",
		Short: "Remove a contract key",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStateKey(g, cmd, args, func(s *store.Store, contract common.ContentAddress, key access.Key) error {
				return s.DeleteState(contract, key)
			})
		},
	}

	cmd.AddCommand(putCmd, getCmd, importCmd, getStateCmd, deleteStateCmd)
	return cmd
}

// withStateKey opens the store and parses "<contract> <key-word>..." args.
func withStateKey(g *globalFlags, cmd *cobra.Command, args []string, fn func(*store.Store, common.ContentAddress, access.Key) error) error {
	cfg, err := g.load(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	key := make(access.Key, 0, len(args)-1)
	for _, a := range args[1:] {
		w, err := strconv.ParseUint(a, 0, 64)
		if err != nil {
			return fmt.Errorf("key word %q: %w", a, err)
		}
		key = append(key, w)
	}
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s, common.HexToHash(args[0]), key)
}

func formatWords(words []common.Word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = strconv.FormatUint(w, 10)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
