package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/sunnix1818/geo-countries/internal/geojson"
	"github.com/sunnix1818/geo-countries/internal/world"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type options struct {
	runs      int
	days      int
	seedBase  int64
	seedStep  int64
	dataPath  string
	gridCols  int
	gridRows  int
	policy    string
	player    string
	target    string
	parallel  int
	threshold float64
}

type runStats struct {
	runIndex int
	seed     int64
	session  string
	player   world.NationID

	days        int
	monthTicks  int
	conquests   int
	denials     int
	recruits    int
	territories int
	finalGDP    float64
	finalArmy   float64

	firstConquestDay int
	targetDay        int
	stalled          bool
}

func main() {
	var o options
	flag.IntVar(&o.runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&o.days, "days", 360, "simulated days per run")
	flag.Int64Var(&o.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&o.seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&o.dataPath, "data", "", "GeoJSON file; a synthetic grid is used when empty")
	flag.IntVar(&o.gridCols, "grid-cols", 8, "synthetic grid columns")
	flag.IntVar(&o.gridRows, "grid-rows", 5, "synthetic grid rows")
	flag.StringVar(&o.policy, "policy", world.AdjacencyProximity, "adjacency policy: proximity or border")
	flag.Float64Var(&o.threshold, "threshold", world.DefaultAdjacencyThreshold, "proximity threshold in pixels")
	flag.StringVar(&o.player, "player", "", "player nation (default: first country)")
	flag.StringVar(&o.target, "target", "", "country the bot tries to reach first (fuzzy matched)")
	flag.IntVar(&o.parallel, "parallel", runtime.NumCPU(), "concurrent runs")
	flag.Parse()

	if err := validate(o); err != nil {
		fmt.Println("error:", err)
		os.Exit(2)
	}

	var src world.Source
	if o.dataPath != "" {
		res, err := geojson.LoadFile(o.dataPath)
		if err != nil {
			fmt.Println("error:", err)
			os.Exit(1)
		}
		src.Features = res.Features
	}

	fmt.Println(titleStyle.Render("=== Headless Conquest Report ==="))
	fmt.Printf("%s runs=%d days=%d seed_base=%d seed_step=%d policy=%s\n\n",
		labelStyle.Render("params:"), o.runs, o.days, o.seedBase, o.seedStep, o.policy)

	all, err := runAll(context.Background(), o, src)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
	for _, rs := range all {
		printRun(rs)
	}
	printAggregate(all)
}

func validate(o options) error {
	var errs []error
	if o.runs <= 0 {
		errs = append(errs, errors.New("-runs must be > 0"))
	}
	if o.days <= 0 {
		errs = append(errs, errors.New("-days must be > 0"))
	}
	if o.dataPath == "" && (o.gridCols <= 0 || o.gridRows <= 0) {
		errs = append(errs, errors.New("-grid-cols and -grid-rows must be > 0"))
	}
	if o.policy != world.AdjacencyProximity && o.policy != world.AdjacencyBorder {
		errs = append(errs, fmt.Errorf("unsupported policy %q (supported: proximity, border)", o.policy))
	}
	return errors.Join(errs...)
}

// runAll executes every run concurrently. Each run owns its World, so
// runs share nothing but the read-only source features.
func runAll(ctx context.Context, o options, src world.Source) ([]runStats, error) {
	out := make([]runStats, o.runs)
	g, ctx := errgroup.WithContext(ctx)
	if o.parallel > 0 {
		g.SetLimit(o.parallel)
	}
	for i := 0; i < o.runs; i++ {
		seed := o.seedBase + int64(i)*o.seedStep
		g.Go(func() error {
			w, err := buildWorld(o, src, seed)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			rs, err := runGreedy(ctx, w, o.days, o.target)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			rs.runIndex = i + 1
			rs.seed = seed
			out[i] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func buildWorld(o options, src world.Source, seed int64) (*world.World, error) {
	if o.dataPath == "" {
		opts := []world.ScenarioOption{
			world.WithSeed(seed),
			world.WithPlayer(o.player),
			world.WithGrid(o.gridCols, o.gridRows, -150, 75, 20),
		}
		if o.policy == world.AdjacencyBorder {
			opts = append(opts, world.WithAdjacency(world.AdjacencyBorder, world.DefaultBorderEpsilon))
		} else {
			opts = append(opts, world.WithAdjacency(world.AdjacencyProximity, o.threshold))
		}
		return world.NewScenario(opts...), nil
	}
	cfg := world.DefaultConfig()
	cfg.Seed = seed
	cfg.Player = o.player
	cfg.Adjacency.Policy = o.policy
	cfg.Adjacency.Threshold = o.threshold
	return world.New(cfg, src, slog.New(slog.DiscardHandler))
}

// runGreedy plays the player with a simple bot: at the start of every
// month it conquers one candidate, preferring the target, then recruits.
func runGreedy(ctx context.Context, w *world.World, days int, target string) (runStats, error) {
	rs := runStats{
		session:          w.SessionID.String(),
		player:           w.Player(),
		firstConquestDay: -1,
		targetDay:        -1,
	}
	var targetID world.CountryID
	if target != "" {
		id, ok := w.FindCountry(target)
		if !ok {
			return rs, fmt.Errorf("%w: %s", world.ErrUnknownCountry, target)
		}
		targetID = id
	}

	for day := 0; day < days; day++ {
		if err := ctx.Err(); err != nil {
			return rs, err
		}
		if day%world.DaysPerMonth == 0 {
			if c, ok := pickCandidate(w.Conquest.Candidates(w.Player()), targetID); ok {
				if err := w.Conquer(c); err != nil {
					rs.denials++
				}
			} else {
				rs.stalled = true
			}
			if w.Recruit() == nil {
				rs.recruits++
			}
		}
		w.AdvanceDay()
	}

	entries := w.Log.FilterActor(string(w.Player()))
	rs.days = days
	rs.monthTicks = w.Economy.Ticks()
	rs.conquests = countKey(entries, "conquest", "taken")
	rs.denials += countKey(entries, "conquest", "denied")
	rs.firstConquestDay = firstDay(entries, "conquest", "taken", "")
	if targetID != "" {
		rs.targetDay = firstDay(entries, "conquest", "taken", string(targetID)+" from")
	}
	ps := w.Panel()
	rs.territories = ps.Territories
	rs.finalGDP = ps.GDP
	rs.finalArmy = ps.Army
	return rs, nil
}

// pickCandidate returns the target if it is conquerable, else the first candidate.
func pickCandidate(cands []world.CountryID, target world.CountryID) (world.CountryID, bool) {
	if len(cands) == 0 {
		return "", false
	}
	for _, c := range cands {
		if c == target {
			return c, true
		}
	}
	return cands[0], true
}

func countKey(entries []world.EventEntry, category, key string) int {
	n := 0
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			n++
		}
	}
	return n
}

func firstDay(entries []world.EventEntry, category, key, prefix string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if prefix == "" || strings.HasPrefix(e.Value, prefix) {
			return e.Day
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("--- Run %d (seed=%d) ---", rs.runIndex, rs.seed)))
	fmt.Printf("%s %s player=%s\n", labelStyle.Render("session:"), rs.session, rs.player)
	fmt.Printf("phase_markers: first_conquest=%s target=%s\n", dayString(rs.firstConquestDay), dayString(rs.targetDay))
	fmt.Printf("event_totals: month_ticks=%d conquests=%d denials=%d recruits=%d\n",
		rs.monthTicks, rs.conquests, rs.denials, rs.recruits)
	outcome := goodStyle.Render("expanding")
	if rs.stalled {
		outcome = badStyle.Render("stalled")
	}
	fmt.Printf("final: territories=%d gdp=%.0f army=%.0f outcome=%s\n\n", rs.territories, rs.finalGDP, rs.finalArmy, outcome)
}

func printAggregate(all []runStats) {
	fmt.Println(titleStyle.Render("=== Aggregate ==="))
	fmt.Printf("runs=%d\n", len(all))

	var terr, conq, den int
	var firsts []int
	var stalled int
	for _, rs := range all {
		terr += rs.territories
		conq += rs.conquests
		den += rs.denials
		if rs.firstConquestDay >= 0 {
			firsts = append(firsts, rs.firstConquestDay)
		}
		if rs.stalled {
			stalled++
		}
	}
	fmt.Printf("avg_per_run: territories=%.1f conquests=%.1f denials=%.1f\n",
		avg(terr, len(all)), avg(conq, len(all)), avg(den, len(all)))
	fmt.Printf("phase_marker_avg_days: first_conquest=%s\n", avgDayString(firsts))
	fmt.Printf("stalled_runs=%d\n", stalled)

	ranked := rankRuns(all)
	if len(ranked) > 0 {
		best := ranked[0]
		fmt.Printf("best_run=%d seed=%d territories=%d\n", best.runIndex, best.seed, best.territories)
	}
}

// rankRuns orders runs by territories held, then by run index.
func rankRuns(all []runStats) []runStats {
	out := append([]runStats(nil), all...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].territories != out[j].territories {
			return out[i].territories > out[j].territories
		}
		return out[i].runIndex < out[j].runIndex
	})
	return out
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func dayString(d int) string {
	if d < 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d", d)
}

func avgDayString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
