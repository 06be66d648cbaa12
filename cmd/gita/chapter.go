package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aescanero/gita/internal/application/chapters"
	"github.com/aescanero/gita/internal/config"
	"github.com/aescanero/gita/pkg/adapters/scripture"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newChapterCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "chapter <number>",
		Short: "Look up one chapter (1-18) and print its details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := chapters.ParseChapterString(args[0])
			if err != nil {
				return errors.New(chapters.InvalidChapterMessage)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			client, err := scripture.NewClient(&scripture.Config{
				BaseURL: cfg.Upstream.BaseURL,
				APIKey:  cfg.Upstream.APIKey,
				Host:    cfg.Upstream.Host,
				Timeout: cfg.Upstream.Timeout,
			})
			if err != nil {
				return err
			}

			svc := chapters.NewService(client, nil, nil, zap.NewNop())
			return runChapter(cmd.Context(), svc, n, raw, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the upstream JSON unchanged")

	return cmd
}

func runChapter(ctx context.Context, svc *chapters.Service, n int, raw bool, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	res, err := svc.Lookup(ctx, n)
	if err != nil {
		status, msg := chapters.ErrorStatus(err)
		return fmt.Errorf("lookup failed (%d): %s", status, msg)
	}

	if raw {
		_, err := fmt.Fprintln(out, string(res.Body))
		return err
	}

	ch, err := res.Decode()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Chapter %d: %s\n", ch.ChapterNumber, ch.Name)
	fmt.Fprintf(out, "Slug: %s\n", ch.Slug)
	fmt.Fprintf(out, "Transliterated Name: %s\n", ch.NameTransliterated)
	fmt.Fprintf(out, "Total Verses Count: %d\n", ch.VersesCount)
	fmt.Fprintf(out, "Chapter Summary (English): %s\n", ch.ChapterSummary)
	fmt.Fprintf(out, "Chapter Summary (Hindi): %s\n", ch.ChapterSummaryHindi)

	return nil
}
