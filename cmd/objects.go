package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"s3util/core/keygen"
	"s3util/core/objectstore"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxParallelDeletes bounds the concurrent requests issued by rm.
const maxParallelDeletes = 8

var (
	uploadMetadata map[string]string
	presignExpires time.Duration
)

// withStore opens a session and runs fn against its store.
func withStore(fn func(cmd *cobra.Command, args []string, store *objectstore.Store) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.close()
		return fn(cmd, args, sess.store)
	}
}

var putCmd = &cobra.Command{
	Use:   "put KEY JSON",
	Short: "Store a JSON document under a key",
	Args:  cobra.ExactArgs(2),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *objectstore.Store) error {
		doc := []byte(args[1])
		if !json.Valid(doc) {
			return fmt.Errorf("value for %q is not valid JSON", args[0])
		}
		return store.PutSerializable(cmd.Context(), args[0], json.RawMessage(doc))
	}),
}

var getCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print the JSON document stored under a key",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *objectstore.Store) error {
		var raw json.RawMessage
		if err := store.GetSerializable(cmd.Context(), args[0], &raw); err != nil {
			return err
		}
		var out bytes.Buffer
		if err := json.Indent(&out, raw, "", "  "); err != nil {
			return fmt.Errorf("failed to format document: %w", err)
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), out.String())
		return err
	}),
}

var uploadCmd = &cobra.Command{
	Use:   "upload KEY FILE",
	Short: "Upload a local file under a key",
	Args:  cobra.ExactArgs(2),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *objectstore.Store) error {
		return store.UploadFile(cmd.Context(), args[0], args[1], uploadMetadata)
	}),
}

var mvCmd = &cobra.Command{
	Use:   "mv SOURCE TARGET",
	Short: "Move an object to a new key",
	Long:  `Copies SOURCE to TARGET and then deletes SOURCE. The move is not atomic.`,
	Args:  cobra.ExactArgs(2),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *objectstore.Store) error {
		return store.MoveObject(cmd.Context(), args[0], args[1])
	}),
}

var rmCmd = &cobra.Command{
	Use:   "rm KEY...",
	Short: "Delete one or more objects",
	Args:  cobra.MinimumNArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *objectstore.Store) error {
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(maxParallelDeletes)
		for _, key := range args {
			g.Go(func() error {
				return store.DeleteObject(ctx, key)
			})
		}
		return g.Wait()
	}),
}

var existsCmd = &cobra.Command{
	Use:   "exists KEY",
	Short: "Report whether a key exists",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *objectstore.Store) error {
		exists, err := store.KeyExists(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), exists)
		return err
	}),
}

var metaCmd = &cobra.Command{
	Use:   "meta KEY",
	Short: "Print the user metadata of an object",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *objectstore.Store) error {
		metadata, found, err := store.GetMetadataIfKeyExists(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("object %q does not exist", args[0])
		}
		data, err := json.MarshalIndent(metadata, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}),
}

var sizeCmd = &cobra.Command{
	Use:   "size KEY",
	Short: "Print the content length of an object in bytes",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *objectstore.Store) error {
		size, err := store.GetSize(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), size)
		return err
	}),
}

var presignCmd = &cobra.Command{
	Use:   "presign KEY",
	Short: "Print a presigned download URL",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *objectstore.Store) error {
		u, err := store.GeneratePresignedURL(cmd.Context(), args[0], presignExpires)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), u)
		return err
	}),
}

var waitCmd = &cobra.Command{
	Use:   "wait KEY",
	Short: "Block until a key exists",
	Long:  `Polls the bucket until KEY exists or storage.wait_timeout_seconds elapses.`,
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *objectstore.Store) error {
		return store.WaitUntilKeyExists(cmd.Context(), args[0])
	}),
}

var lsCmd = &cobra.Command{
	Use:   "ls [PREFIX]",
	Short: "List keys under a prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *objectstore.Store) error {
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		keys, err := store.List(cmd.Context(), prefix)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), key); err != nil {
				return err
			}
		}
		return nil
	}),
}

var keygenCmd = &cobra.Command{
	Use:   "keygen PREFIX",
	Short: "Print a new date partitioned unique key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), keygen.DatePartitionedUniqueKey(args[0], time.Now()))
		return err
	},
}

func init() {
	uploadCmd.Flags().StringToStringVar(&uploadMetadata, "meta", nil, "user metadata as key=value pairs")
	presignCmd.Flags().DurationVar(&presignExpires, "expires", 15*time.Minute, "how long the URL stays valid")

	RootCmd.AddCommand(putCmd, getCmd, uploadCmd, mvCmd, rmCmd, existsCmd,
		metaCmd, sizeCmd, presignCmd, waitCmd, lsCmd, keygenCmd)
}
