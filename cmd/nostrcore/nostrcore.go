// SPDX-License-Identifier: ice License 1.0

package main

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/gookit/goutil/errorx"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ice-blockchain/nostrcore/bounds"
	"github.com/ice-blockchain/nostrcore/cfg"
	"github.com/ice-blockchain/nostrcore/model"
)

var (
	configPath string
	secretKey  string
	kind       uint16
	content    string
	tags       []string
	createdAt  int64
	filterJSON string
	eventJSON  string
	showStats  bool

	nostrcore = &cobra.Command{
		Use:   "nostrcore",
		Short: "sign nostr events and evaluate nostr filters",
		PersistentPreRun: func(*cobra.Command, []string) {
			cfg.MustInit(configPath)
		},
	}
	keygen = &cobra.Command{
		Use:   "keygen",
		Short: "generate a new secret key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sk, err := model.GenerateSecretKey()
			if err != nil {
				return errorx.Withf(err, "failed to generate secret key")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "secret key: %v\npublic key: %v\n", sk.Hex(), sk.PubKey())

			return nil
		},
	}
	finalize = &cobra.Command{
		Use:   "finalize",
		Short: "build, hash and sign an event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			skHex := secretKey
			if skHex == "" {
				skHex = viper.GetString("secretKey")
			}
			sk, err := model.SecretKeyFromHex(skHex)
			if err != nil {
				return errorx.Withf(err, "invalid secret key, use --sk or `secretKey` configuration")
			}
			template := model.EventTemplate{
				CreatedAt: model.Timestamp(createdAt),
				Kind:      model.Kind(kind),
				Tags:      parseTags(tags),
				Content:   content,
			}
			if template.CreatedAt == 0 {
				template.CreatedAt = model.Timestamp(time.Now().Unix())
			}
			fmt.Fprintln(cmd.OutOrStdout(), template.Finalize(sk))

			return nil
		},
	}
	verify = &cobra.Command{
		Use:   "verify [event json]",
		Short: "check the id, the signature and the kind structure of an event, reads stdin without arguments",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := readEvent(cmd, args)
			if err != nil {
				return err
			}
			if !event.CheckID() {
				return errorx.Errorf("id mismatch: got %v, expected %v", event.ID, event.GetID())
			}
			if !event.CheckSignature() {
				return errorx.Errorf("invalid signature %v for %v", event.Sig, event.PubKey)
			}
			if err = event.Validate(); err != nil {
				return errorx.Withf(err, "event %v is not valid", event.ID)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok", event.ID)

			return nil
		},
	}
	match = &cobra.Command{
		Use:   "match",
		Short: "evaluate a filter against an event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter model.Filter
			if err := filter.UnmarshalJSON([]byte(filterJSON)); err != nil {
				return errorx.Withf(err, "failed to decode filter %v", filterJSON)
			}
			var event model.Event
			if err := event.UnmarshalJSON([]byte(eventJSON)); err != nil {
				return errorx.Withf(err, "failed to decode event %v", eventJSON)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "structural: %v\nmatches: %v\n",
				filter.MatchesIgnoringTimestampConstraints(&event), filter.Matches(&event))

			return nil
		},
	}
	limit = &cobra.Command{
		Use:   "limit [REQ envelope | filter json]",
		Short: "estimate theoretical limits and apply configured bounds, reads stdin without arguments",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := readFilters(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i := range filters {
				fmt.Fprintf(out, "%v\t%v\n", formatLimit(filters[i].TheoreticalLimit()), filters[i])
			}
			guard := bounds.New(cfg.MustGet[bounds.Config]())
			bounded := guard.Apply(filters)
			fmt.Fprintf(out, "total\t%v\n", formatLimit(filters.TheoreticalLimit()))
			for i := range bounded {
				fmt.Fprintf(out, "bounded\t%v\n", bounded[i])
			}
			if showStats {
				guard.WriteStats(out)
			}

			return nil
		},
	}
)

func init() {
	nostrcore.PersistentFlags().StringVar(&configPath, "config", "application.yaml", "path to the yaml configuration")
	finalize.Flags().StringVar(&secretKey, "sk", "", "hex secret key used for signing")
	finalize.Flags().Uint16Var(&kind, "kind", uint16(model.KindTextNote), "event kind")
	finalize.Flags().StringVar(&content, "content", "", "event content")
	finalize.Flags().StringArrayVar(&tags, "tag", nil, "comma separated tag, e.g. `e,<id>`; repeatable and order preserving")
	finalize.Flags().Int64Var(&createdAt, "created-at", 0, "unix timestamp, defaults to now")
	match.Flags().StringVar(&filterJSON, "filter", "{}", "filter json")
	match.Flags().StringVar(&eventJSON, "event", "", "event json")
	match.MarkFlagRequired("event")
	limit.Flags().BoolVar(&showStats, "stats", false, "print bounds statistics")
	nostrcore.AddCommand(keygen, finalize, verify, match, limit)
}

func parseTags(raw []string) model.Tags {
	result := make(model.Tags, 0, len(raw))
	for _, tag := range raw {
		result = append(result, model.Tag(strings.Split(tag, ",")))
	}

	return result
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) > 0 {
		return []byte(args[0]), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, errorx.Withf(err, "failed to read stdin")
	}

	return data, nil
}

func readEvent(cmd *cobra.Command, args []string) (*model.Event, error) {
	data, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	if trimmed := strings.TrimSpace(string(data)); strings.HasPrefix(trimmed, "[") {
		envelope, err := model.ParseMessage([]byte(trimmed))
		if err != nil {
			return nil, errorx.Withf(err, "failed to parse message")
		}
		eventEnvelope, ok := envelope.(*model.EventEnvelope)
		if !ok {
			return nil, errorx.Errorf("expected EVENT envelope, got %v", envelope.Label())
		}

		return &eventEnvelope.Event, nil
	}
	var event model.Event
	if err = event.UnmarshalJSON(data); err != nil {
		return nil, errorx.Withf(err, "failed to decode event")
	}

	return &event, nil
}

func readFilters(cmd *cobra.Command, args []string) (model.Filters, error) {
	data, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	if trimmed := strings.TrimSpace(string(data)); strings.HasPrefix(trimmed, "[") {
		envelope, err := model.ParseMessage([]byte(trimmed))
		if err != nil {
			return nil, errorx.Withf(err, "failed to parse message")
		}
		switch e := envelope.(type) {
		case *model.ReqEnvelope:
			return e.Filters, nil
		case *model.CountEnvelope:
			return e.Filters, nil
		default:
			return nil, errorx.Errorf("expected REQ or COUNT envelope, got %v", envelope.Label())
		}
	}
	var filter model.Filter
	if err = filter.UnmarshalJSON(data); err != nil {
		return nil, errorx.Withf(err, "failed to decode filter")
	}

	return model.Filters{filter}, nil
}

func formatLimit(limit int) string {
	if limit == model.Unbounded {
		return "unbounded"
	}

	return fmt.Sprint(limit)
}

func main() {
	if err := nostrcore.Execute(); err != nil {
		log.Panic(err)
	}
}
