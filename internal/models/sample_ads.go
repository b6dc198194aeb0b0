package models

import "time"

func score(v float64) *float64 { return &v }

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SampleAds returns the demonstration collection the library starts with.
func SampleAds() []Ad {
	return []Ad{
		{
			ID:              "1",
			Title:           "Transform Your Business with AI-Powered Analytics",
			Description:     "Discover how leading companies are using our AI platform to increase revenue by 40%. Get started with a free 14-day trial and see the difference data-driven decisions can make.",
			ImageURL:        "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=800&h=600&fit=crop",
			Platform:        PlatformLinkedIn,
			Industry:        "B2B",
			Angle:           "Problem/Lösung",
			CampaignGoal:    "Lead-Generierung",
			AdFormat:        "Bild-Anzeige",
			FunnelStage:     "Aufmerksamkeit",
			TargetGroup:     "CMO",
			Tags:            []string{"AI", "Analytics", "B2B", "SaaS"},
			CreatedAt:       mustTime("2024-01-15T10:30:00Z"),
			UserID:          "user1",
			EngagementScore: score(85),
			BrandName:       "DataFlow",
			CTAText:         "Start Free Trial",
			TargetAudience:  "Business executives, 35-55 years old",
		},
		{
			ID:              "2",
			Title:           "The Future of E-commerce is Here",
			Description:     "Join thousands of online retailers who have increased their sales by 60% with our all-in-one e-commerce platform. Easy setup, powerful features, unlimited growth.",
			ImageURL:        "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=800&h=600&fit=crop",
			Platform:        PlatformMeta,
			Industry:        "Shop",
			Angle:           "Social Proof",
			CampaignGoal:    "Verkauf/Conversion",
			AdFormat:        "Karussell",
			FunnelStage:     "Conversion",
			TargetGroup:     "CMO",
			Tags:            []string{"E-commerce", "Online Store", "Sales"},
			CreatedAt:       mustTime("2024-01-14T15:45:00Z"),
			UserID:          "user1",
			IsBookmarked:    true,
			EngagementScore: score(92),
			BrandName:       "ShopifyPlus",
			CTAText:         "Get Started Today",
			TargetAudience:  "Small business owners, online entrepreneurs",
		},
		{
			ID:              "3",
			Title:           "Learn Digital Marketing in 30 Days",
			Description:     "Master the skills that top marketers use to drive results. Our comprehensive course covers SEO, PPC, social media, and analytics. 95% job placement rate.",
			ImageURL:        "https://images.unsplash.com/photo-1432888622747-4eb9a8efeb07?w=800&h=600&fit=crop",
			Platform:        PlatformGoogle,
			Industry:        "B2B",
			Angle:           "Bildend",
			CampaignGoal:    "Lead-Generierung",
			AdFormat:        "Video",
			FunnelStage:     "Überlegung",
			TargetGroup:     "HR",
			Tags:            []string{"Education", "Marketing", "Career"},
			CreatedAt:       mustTime("2024-01-13T09:20:00Z"),
			UserID:          "user1",
			EngagementScore: score(78),
			BrandName:       "MarketingPro",
			CTAText:         "Enroll Now",
			TargetAudience:  "Career changers, marketing professionals",
		},
		{
			ID:              "4",
			Title:           "Sustainable Fashion That Doesn't Cost the Earth",
			Description:     "Beautiful, ethically-made clothing that's kind to both you and the planet. Use code EARTH20 for 20% off your first order. Free shipping on orders over $75.",
			ImageURL:        "https://images.unsplash.com/photo-1445205170230-053b83016050?w=800&h=600&fit=crop",
			Platform:        PlatformPinterest,
			Industry:        "Shop",
			Angle:           "Emotionaler Appell",
			CampaignGoal:    "Verkauf/Conversion",
			AdFormat:        "Bild-Anzeige",
			FunnelStage:     "Aufmerksamkeit",
			TargetGroup:     "CMO",
			Tags:            []string{"Fashion", "Sustainable", "Eco-friendly"},
			CreatedAt:       mustTime("2024-01-12T14:10:00Z"),
			UserID:          "user1",
			IsBookmarked:    true,
			EngagementScore: score(88),
			BrandName:       "EcoThreads",
			CTAText:         "Shop Collection",
			TargetAudience:  "Environmentally conscious consumers, 25-40 years old",
		},
		{
			ID:              "5",
			Title:           "IT Infrastructure Solutions That Scale",
			Description:     "Discover cloud solutions that grow with your business. Our expert team has helped over 10,000 companies modernize their IT infrastructure. Schedule your consultation today.",
			ImageURL:        "https://images.unsplash.com/photo-1564013799919-ab600027ffc6?w=800&h=600&fit=crop",
			Platform:        PlatformBing,
			Industry:        "B2B",
			Angle:           "Testimonial",
			CampaignGoal:    "Lead-Generierung",
			AdFormat:        "Text-Anzeige",
			FunnelStage:     "Überlegung",
			TargetGroup:     "IT",
			Tags:            []string{"IT", "Cloud", "Infrastructure"},
			CreatedAt:       mustTime("2024-01-11T11:30:00Z"),
			UserID:          "user1",
			EngagementScore: score(76),
			BrandName:       "CloudTech",
			CTAText:         "Get Consultation",
			TargetAudience:  "IT decision makers, enterprise companies",
		},
		{
			ID:              "6",
			Title:           "Recruit Top Talent with AI-Powered Hiring",
			Description:     "Join the hiring revolution! Our proven AI platform has helped 50,000+ companies find the perfect candidates 3x faster. Streamline your recruitment process today.",
			ImageURL:        "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=800&h=600&fit=crop",
			Platform:        PlatformLinkedIn,
			Industry:        "B2B",
			Angle:           "Vorher/Nachher",
			CampaignGoal:    "Lead-Generierung",
			AdFormat:        "Sponsored Message",
			FunnelStage:     "Retargeting",
			TargetGroup:     "HR",
			Tags:            []string{"HR", "Recruitment", "AI"},
			CreatedAt:       mustTime("2024-01-10T16:45:00Z"),
			UserID:          "user1",
			EngagementScore: score(94),
			BrandName:       "TalentAI",
			CTAText:         "Start Free Trial",
			TargetAudience:  "HR professionals, talent acquisition teams",
		},
	}
}
