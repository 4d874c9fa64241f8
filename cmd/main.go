// 指示: miu200521358
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/miu200521358/mu_vmd2vam/internal/config"
	"github.com/miu200521358/mu_vmd2vam/pkg/adapter/io_motion/vmd"
	"github.com/miu200521358/mu_vmd2vam/pkg/adapter/io_profile"
	"github.com/miu200521358/mu_vmd2vam/pkg/adapter/io_scene/vam"
	"github.com/miu200521358/mu_vmd2vam/pkg/adapter/io_timeline"
	"github.com/miu200521358/mu_vmd2vam/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_vmd2vam/pkg/infra/watcher"
	"github.com/miu200521358/mu_vmd2vam/pkg/shared/logging"
	"github.com/miu200521358/mu_vmd2vam/pkg/shared/metrics"
	"github.com/miu200521358/mu_vmd2vam/pkg/usecase/minteractor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// convertOptions は convert コマンドの引数を保持する。
type convertOptions struct {
	vmdPath      string
	scenePath    string
	outputPath   string
	configPath   string
	envFile      string
	profilePath  string
	metricsPath  string
	timelinePath string
	atomName     string
	logLevel     string
	noHeels      bool
	fps          float64
	timePad      float64
	position     float64
}

// inspectOptions は inspect コマンドの引数を保持する。
type inspectOptions struct {
	vmdPath     string
	profilePath string
}

// main はVMDからVaMシーンへの変換を実行する。
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := runContext(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	return runContext(context.Background(), args, out, errOut)
}

// runContext は指定コンテキストでCLI処理全体を実行する。
func runContext(ctx context.Context, args []string, out io.Writer, errOut io.Writer) error {
	root := newRootCommand(out, errOut)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// newRootCommand はコマンドツリーを生成する。
func newRootCommand(out io.Writer, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "mu_vmd2vam",
		Short:         messages.CommandRootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.AddCommand(newConvertCommand(out), newWatchCommand(out, errOut), newInspectCommand(out))
	return root
}

// newConvertCommand は convert コマンドを生成する。
func newConvertCommand(out io.Writer) *cobra.Command {
	opts := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert [vmd] [scene]",
		Short: messages.CommandConvertShort,
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.applyPositionals(args)
			return runConvert(cmd.Context(), opts, collectOverrides(cmd, opts), out)
		},
	}
	bindConvertFlags(cmd, opts)
	return cmd
}

// newWatchCommand は watch コマンドを生成する。
func newWatchCommand(out io.Writer, errOut io.Writer) *cobra.Command {
	opts := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "watch [vmd] [scene]",
		Short: messages.CommandWatchShort,
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.applyPositionals(args)
			if strings.TrimSpace(opts.vmdPath) == "" {
				return errors.New(messages.MessageVmdRequired)
			}
			overrides := collectOverrides(cmd, opts)
			convert := func(ctx context.Context) error {
				return runConvert(ctx, opts, overrides, out)
			}
			if err := convert(cmd.Context()); err != nil {
				fmt.Fprintln(errOut, err)
			}
			motionWatcher, err := watcher.NewMotionWatcher(opts.vmdPath, watcher.DefaultDebounce)
			if err != nil {
				return err
			}
			defer motionWatcher.Close()
			fmt.Fprintf(out, messages.LogWatchStart, opts.vmdPath)
			return motionWatcher.Run(cmd.Context(), convert)
		},
	}
	bindConvertFlags(cmd, opts)
	return cmd
}

// applyPositionals はフラグ未指定の入力パスを位置引数から補う。
func (opts *convertOptions) applyPositionals(args []string) {
	if opts.vmdPath == "" && len(args) > 0 {
		opts.vmdPath = args[0]
	}
	if opts.scenePath == "" && len(args) > 1 {
		opts.scenePath = args[1]
	}
}

// bindConvertFlags は変換系コマンド共通のフラグを登録する。
func bindConvertFlags(cmd *cobra.Command, opts *convertOptions) {
	flags := cmd.Flags()
	flags.StringVar(&opts.vmdPath, "vmd", "", messages.FlagVmdUsage)
	flags.StringVar(&opts.scenePath, "scene", "", messages.FlagSceneUsage)
	flags.StringVar(&opts.outputPath, "out", "", messages.FlagOutUsage)
	flags.StringVar(&opts.configPath, "config", "", messages.FlagConfigUsage)
	flags.StringVar(&opts.envFile, "env-file", "", messages.FlagEnvFileUsage)
	flags.StringVar(&opts.profilePath, "profile", "", messages.FlagProfileUsage)
	flags.StringVar(&opts.metricsPath, "metrics-out", "", messages.FlagMetricsUsage)
	flags.StringVar(&opts.timelinePath, "timeline-out", "", messages.FlagTimelineUsage)
	flags.StringVar(&opts.atomName, "atom", "", messages.FlagAtomUsage)
	flags.StringVar(&opts.logLevel, "log-level", "", messages.FlagLogLevelUsage)
	flags.BoolVar(&opts.noHeels, "no-heels", false, messages.FlagNoHeelsUsage)
	flags.Float64Var(&opts.fps, "fps", 0, messages.FlagFPSUsage)
	flags.Float64Var(&opts.timePad, "time-pad", 0, messages.FlagTimePadUsage)
	flags.Float64Var(&opts.position, "position-factor", 0, messages.FlagPositionUsage)
}

// collectOverrides は明示指定されたフラグだけを設定の上書き値にする。
func collectOverrides(cmd *cobra.Command, opts *convertOptions) map[string]any {
	overrides := map[string]any{}
	changed := cmd.Flags().Changed
	if changed("profile") {
		overrides["profile_path"] = opts.profilePath
	}
	if changed("metrics-out") {
		overrides["metrics_path"] = opts.metricsPath
	}
	if changed("timeline-out") {
		overrides["timeline_path"] = opts.timelinePath
	}
	if changed("atom") {
		overrides["atom_name"] = opts.atomName
	}
	if changed("log-level") {
		overrides["log_level"] = opts.logLevel
	}
	if changed("no-heels") {
		overrides["heels"] = !opts.noHeels
	}
	if changed("fps") {
		overrides["fps"] = opts.fps
	}
	if changed("time-pad") {
		overrides["time_pad_seconds"] = opts.timePad
	}
	if changed("position-factor") {
		overrides["position_factor"] = opts.position
	}
	return overrides
}

// runConvert は設定を解決して変換を実行する。
func runConvert(ctx context.Context, opts *convertOptions, overrides map[string]any, out io.Writer) error {
	if strings.TrimSpace(opts.vmdPath) == "" {
		return errors.New(messages.MessageVmdRequired)
	}
	if strings.TrimSpace(opts.scenePath) == "" {
		return errors.New(messages.MessageSceneRequired)
	}
	cfg, err := config.Load(ctx, config.Sources{
		ConfigPath: opts.configPath,
		EnvFile:    opts.envFile,
		Overrides:  overrides,
	})
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}
	previous := logging.SetDefaultLogger(logger)
	defer func() {
		_ = logger.Sync()
		logging.SetDefaultLogger(previous)
	}()

	profile, err := io_profile.Load(cfg.ProfilePath)
	if err != nil {
		return err
	}
	armRotation, heelRotation, err := cfg.Angles()
	if err != nil {
		return err
	}
	manager := metrics.NewManager(
		metrics.WithMetricsEnabled(strings.TrimSpace(cfg.MetricsPath) != ""),
		metrics.WithRegistry(prometheus.NewRegistry()),
	)

	usecase := minteractor.NewVmd2VamUsecase(minteractor.Vmd2VamUsecaseDeps{
		MotionReader:    vmd.NewVmdRepository(),
		SceneRepository: vam.NewSceneRepository(cfg.OutputIndent),
		TimelineWriter:  io_timeline.NewTimelineWriter(),
		Metrics:         manager,
	})

	fmt.Fprintf(out, messages.LogConvertStart, opts.vmdPath, opts.scenePath)
	result, err := usecase.Convert(ctx, minteractor.ConvertRequest{
		MotionPath:   opts.vmdPath,
		ScenePath:    opts.scenePath,
		OutputPath:   opts.outputPath,
		AtomName:     cfg.AtomName,
		TimelinePath: cfg.TimelinePath,
		Profile:      &profile,
		Options: minteractor.RetargetOptions{
			FPS:                cfg.FPS,
			TimePadSeconds:     cfg.TimePadSeconds,
			PositionFactor:     cfg.PositionFactor,
			ArmRotation:        armRotation,
			HeelRotation:       heelRotation,
			Heels:              cfg.Heels,
			CenterHeightOffset: cfg.CenterHeightOffset,
			CenterZOffset:      cfg.CenterZOffset,
		},
	})
	if err != nil {
		return err
	}

	warningIDs := make([]string, 0, len(result.Warnings))
	for id := range result.Warnings {
		warningIDs = append(warningIDs, id)
	}
	slices.Sort(warningIDs)
	for _, id := range warningIDs {
		fmt.Fprintf(out, messages.LogConvertWarning, id, result.Warnings[id])
	}
	fmt.Fprintf(
		out,
		messages.LogConvertSuccess,
		result.OutputPath,
		result.Variant,
		result.BoneCount,
		result.StepCount,
		vam.FormatDecimal(result.RecordedLength),
	)

	if manager.Enabled() {
		if err := manager.WriteTextfile(cfg.MetricsPath); err != nil {
			return err
		}
		fmt.Fprintf(out, messages.LogMetricsWritten, cfg.MetricsPath)
	}
	return nil
}

// newInspectCommand は inspect コマンドを生成する。
func newInspectCommand(out io.Writer) *cobra.Command {
	opts := &inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect [vmd]",
		Short: messages.CommandInspectShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.vmdPath == "" && len(args) > 0 {
				opts.vmdPath = args[0]
			}
			return runInspect(opts, out)
		},
	}
	cmd.Flags().StringVar(&opts.vmdPath, "vmd", "", messages.FlagVmdUsage)
	cmd.Flags().StringVar(&opts.profilePath, "profile", "", messages.FlagProfileUsage)
	return cmd
}

// runInspect はVMDのボーン構成を表示する。
func runInspect(opts *inspectOptions, out io.Writer) error {
	if strings.TrimSpace(opts.vmdPath) == "" {
		return errors.New(messages.MessageVmdRequired)
	}
	profile, err := io_profile.Load(opts.profilePath)
	if err != nil {
		return err
	}
	usecase := minteractor.NewVmd2VamUsecase(minteractor.Vmd2VamUsecaseDeps{
		MotionReader: vmd.NewVmdRepository(),
	})
	result, err := usecase.Inspect(opts.vmdPath, &profile)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, messages.LogInspectHeader, result.ModelName, result.Variant, result.Keyframes)
	for _, bone := range result.Bones {
		destination := bone.Destination
		if !bone.Mapped {
			destination = messages.LogInspectUnmapped
		}
		fmt.Fprintf(out, messages.LogInspectBone, bone.Label, destination, bone.Keyframes, bone.FirstFrame, bone.LastFrame)
	}
	return nil
}
