package catalog

import "benefitup/internal/domain"

// DefaultDeals 内置目录。目录在进程启动时固定，运行期只读。
func DefaultDeals() []domain.Deal {
	return []domain.Deal{
		{
			ID:               "d1",
			PartnerName:      "CloudScale",
			Logo:             "https://picsum.photos/seed/cloud/200",
			Title:            "CloudScale Infrastructure Credits",
			ShortDescription: "Get $5,000 in free cloud credits for your first year.",
			FullDescription:  "CloudScale provides the most robust cloud computing environment for startups. Our platform offers high-performance VPS, managed databases, and global CDN. This deal is designed specifically for early-stage teams looking to scale without the initial infra burden.",
			Benefit:          "$5,000 Credits",
			Category:         domain.CategoryCloud,
			AccessLevel:      domain.AccessLocked,
			Conditions: []string{
				"Must be a registered company",
				"Under $1M in funding",
				"New CloudScale customers only",
			},
		},
		{
			ID:               "d2",
			PartnerName:      "MailPulse",
			Logo:             "https://picsum.photos/seed/mail/200",
			Title:            "Lifetime Marketing Automation",
			ShortDescription: "Free marketing tools for up to 5,000 subscribers.",
			FullDescription:  "MailPulse is an all-in-one marketing platform. Manage newsletters, transactional emails, and user segmentation with ease. Startups can enjoy our growth plan for free, forever, until they reach 5k subscribers.",
			Benefit:          "Free Growth Plan",
			Category:         domain.CategoryMarketing,
			AccessLevel:      domain.AccessPublic,
			Conditions:       []string{"None"},
		},
		{
			ID:               "d3",
			PartnerName:      "Analytica",
			Logo:             "https://picsum.photos/seed/chart/200",
			Title:            "Real-time Product Analytics",
			ShortDescription: "6 months free of the Pro plan with unlimited events.",
			FullDescription:  "Understand your users like never before. Analytica offers deep-dive event tracking, funnel analysis, and retention reporting. This exclusive perk gives you the full power of our enterprise suite for 6 months.",
			Benefit:          "6 Months Free Pro",
			Category:         domain.CategoryDevTools,
			AccessLevel:      domain.AccessLocked,
			Conditions: []string{
				"Venture-backed startups only",
				"Product must be live",
			},
		},
		{
			ID:               "d4",
			PartnerName:      "SecurePay",
			Logo:             "https://picsum.photos/seed/pay/200",
			Title:            "Zero-fee Transaction Processing",
			ShortDescription: "Waived fees on your first $20k in volume.",
			FullDescription:  "Launch your product with zero transaction fees. SecurePay is the favorite payment processor for indie hackers and global startups. We take care of the security and compliance while you focus on sales.",
			Benefit:          "$20k Fee-free",
			Category:         domain.CategoryFinance,
			AccessLevel:      domain.AccessPublic,
			Conditions:       []string{"Standard KYC required"},
		},
		{
			ID:               "d5",
			PartnerName:      "DevFlow",
			Logo:             "https://picsum.photos/seed/dev/200",
			Title:            "Accelerated CI/CD Pipeline",
			ShortDescription: "10 free concurrent runners for your builds.",
			FullDescription:  "Stop waiting for your builds. DevFlow provides lightning-fast CI/CD infrastructure that grows with your team. Perfect for heavy monorepos and microservices.",
			Benefit:          "10 Free Runners",
			Category:         domain.CategoryDevTools,
			AccessLevel:      domain.AccessLocked,
			Conditions:       []string{"Must have more than 3 developers"},
		},
		{
			ID:               "d6",
			PartnerName:      "PixelCraft",
			Logo:             "https://picsum.photos/seed/pixel/200",
			Title:            "Design Resource Bundle",
			ShortDescription: "Full access to premium icon packs and UI kits.",
			FullDescription:  "Elevate your UI with professional assets. PixelCraft offers the worlds largest library of Figma-ready components and illustrative assets.",
			Benefit:          "1 Year Free Access",
			Category:         domain.CategoryDesign,
			AccessLevel:      domain.AccessPublic,
			Conditions:       []string{"Individual developer account"},
		},
	}
}
