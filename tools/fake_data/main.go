package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/patrickwarner/adlibrary/internal/models"
	"github.com/patrickwarner/adlibrary/internal/observability"
)

var (
	count = flag.Int("count", 50, "number of ads to generate")
	owner = flag.String("owner", "user1", "user id that owns the generated ads")
	out   = flag.String("out", "", "output file (stdout when empty)")
	days  = flag.Int("days", 90, "spread creation dates over this many days")
	seed  = flag.Int64("seed", time.Now().UnixNano(), "rng seed")
)

func main() {
	flag.Parse()

	logger, err := observability.InitLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	r := rand.New(rand.NewSource(*seed))
	ads := generateAds(r, *count, *owner, time.Now().UTC(), *days)

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Fatal("create output file", zap.String("path", *out), zap.Error(err))
		}
		defer f.Close()
		w = f
	}
	if err := writeAds(w, ads); err != nil {
		logger.Fatal("write ads", zap.Error(err))
	}
	if *out != "" {
		logger.Info("fake ads written", zap.Int("count", len(ads)), zap.String("path", *out), zap.Int64("seed", *seed))
	}
}

func writeAds(w io.Writer, ads []models.Ad) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ads)
}

// generateAds returns n ads, newest first, created within the last span days
// of now.
func generateAds(r *rand.Rand, n int, owner string, now time.Time, span int) []models.Ad {
	if span < 1 {
		span = 1
	}
	ads := make([]models.Ad, 0, n)
	created := now
	step := time.Duration(span) * 24 * time.Hour / time.Duration(max(n, 1))
	for i := 0; i < n; i++ {
		created = created.Add(-time.Duration(r.Int63n(int64(step) + 1)))
		ads = append(ads, fakeAd(r, owner, created))
	}
	return ads
}

func pick(r *rand.Rand, values []string) string {
	return values[r.Intn(len(values))]
}

var brands = []string{"Northwind", "Skyline", "Bloom", "Vertex", "Cobalt", "Lumen", "Harbor", "Kite"}
var products = []string{"Analytics", "CRM", "Shoes", "Coffee", "Cloud Backup", "Course", "Furniture", "Payroll"}
var hooks = []string{"Save 30% Today", "Now Available", "Built for Teams", "Try It Free", "Made to Last", "Join the Waitlist"}
var ctas = []string{"Learn More", "Shop Now", "Sign Up", "Get Started", "Book a Demo", "Download"}
var audiences = []string{"Marketing leaders", "Online shoppers", "IT managers", "HR teams", "Small business owners"}
var tagWords = []string{"sale", "b2b", "saas", "fashion", "video", "launch", "hiring", "demo", "retargeting", "seasonal"}

func fakeAd(r *rand.Rand, owner string, created time.Time) models.Ad {
	brand := pick(r, brands)
	product := pick(r, products)
	platforms := models.Platforms()
	score := float64(r.Intn(1000)) / 10

	want := 1 + r.Intn(3)
	tags := make([]string, 0, want)
	seen := map[string]bool{}
	for len(tags) < want {
		t := pick(r, tagWords)
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}

	return models.Ad{
		ID:              models.NewTimeOrderedID(),
		Title:           fmt.Sprintf("%s %s: %s", brand, product, pick(r, hooks)),
		Description:     fmt.Sprintf("%s %s helps you get more done. %s.", brand, strings.ToLower(product), pick(r, ctas)),
		ImageURL:        fmt.Sprintf("https://picsum.photos/seed/%s-%d/800/600", strings.ToLower(brand), r.Intn(10000)),
		Platform:        platforms[r.Intn(len(platforms))],
		Industry:        pick(r, models.DimensionIndustry.Options()),
		Angle:           pick(r, models.DimensionAngle.Options()),
		CampaignGoal:    pick(r, models.DimensionCampaignGoal.Options()),
		AdFormat:        pick(r, models.DimensionAdFormat.Options()),
		FunnelStage:     pick(r, models.DimensionFunnelStage.Options()),
		TargetGroup:     pick(r, models.DimensionTargetGroup.Options()),
		Tags:            tags,
		CreatedAt:       created.Truncate(time.Second),
		UserID:          owner,
		IsBookmarked:    r.Intn(5) == 0,
		EngagementScore: &score,
		BrandName:       brand,
		CTAText:         pick(r, ctas),
		TargetAudience:  pick(r, audiences),
	}
}
