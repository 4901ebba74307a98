package store

import "github.com/heartmarshall/nivara-backend/internal/domain"

// Seed data written the first time a profile has no stored collection.

func seedHistory() []domain.HistoryRecord {
	return []domain.HistoryRecord{
		{
			ID:          "1",
			Date:        "Oct 24, 2025",
			Plant:       "Tomato",
			Diagnosis:   "Early Blight",
			Confidence:  94,
			Image:       "https://images.unsplash.com/photo-1591857177580-dc82b9ac4e1e?q=80&w=600&auto=format&fit=crop",
			Description: "Early blight is a common fungal disease that affects tomatoes, causing dark spots with concentric rings on leaves.",
			Symptoms:    []string{"Dark brown spots on older leaves", "Yellowing of surrounding tissue", "Concentric ring patterns"},
			Treatment:   []string{"Apply copper-based fungicide", "Remove infected lower leaves", "Improve air circulation"},
			Prevention:  []string{"Crop rotation", "Avoid overhead watering", "Mulching soil"},
		},
	}
}

func seedTracker() []domain.TrackerItem {
	return []domain.TrackerItem{
		{
			ID:       1,
			Plant:    "Monarda (Bee Balm)",
			Issue:    "Leaf Rust",
			Progress: 65,
			Severity: domain.SeverityModerate,
			Cure:     "Apply Copper Fungicide. Prune infected lower leaves to stop fungal spores. Ensure good air circulation.",
			Schedule: "Apply every 7 days; next dose: Tomorrow Morning.",
		},
		{
			ID:       2,
			Plant:    "Tomato Crop",
			Issue:    "Early Blight",
			Progress: 15,
			Severity: domain.SeverityHigh,
			Cure:     "Remove 2 inches of soil surface to remove spores. Use Neem oil spray. Avoid overhead watering.",
			Schedule: "Apply at sunset to avoid leaf burn; next dose: In 4 hours.",
		},
		{
			ID:       3,
			Plant:    "Aloe Vera",
			Issue:    "Root Rot",
			Progress: 100,
			Severity: domain.SeveritySolved,
			Cure:     "Repotted in well-draining soil. Reduced watering frequency.",
			Schedule: "Maintenance: Check soil moisture weekly.",
			IsDone:   true,
		},
	}
}

func seedCommunity() []domain.CommunityPost {
	return []domain.CommunityPost{
		{
			ID:      1,
			Author:  "Aarav Sharma",
			Role:    domain.RoleUser,
			Time:    "2h ago",
			Title:   "Sudden yellow spots on Mango leaves?",
			Content: "I've noticed these small yellow spots spreading on my young mango saplings. Is this a nutrient deficiency or something worse?",
			Likes:   24,
			Replies: 5,
			Tag:     "Diagnosis Needed",
			ExpertReply: &domain.ExpertReply{
				Author:  "Dr. Elena Moss",
				Role:    domain.RoleBotanist,
				Content: "This looks like early signs of Anthracnose. Ensure better air circulation and apply a copper-based fungicide immediately.",
			},
		},
		{
			ID:      2,
			Author:  "Dr. Elena Moss",
			Role:    domain.RoleBotanist,
			Time:    "5h ago",
			Title:   "Tips for preventing Root Rot in the Monsoon",
			Content: "With the rains coming, ensure your pots have clear drainage holes. I recommend adding a layer of perlite to your soil mix now.",
			Likes:   89,
			Replies: 12,
			Tag:     "Expert Tip",
		},
		{
			ID:      3,
			Author:  "Sarah Jenkins",
			Role:    domain.RoleUser,
			Time:    "1d ago",
			Title:   "My Aloe Vera is turning brown/mushy!",
			Content: "I watered it everyday because it's hot, but now the base is mushy. Can I save it?",
			Likes:   15,
			Replies: 3,
			Tag:     "Urgent",
			ExpertReply: &domain.ExpertReply{
				Author:  "Nivara AI",
				Role:    domain.RoleSystem,
				Content: "This is classic root rot from overwatering. Stop watering immediately! Unpot, trim mushy roots, and let it dry for 3 days before repotting in dry soil.",
			},
		},
		{
			ID:      4,
			Author:  "Rajiv Patel",
			Role:    domain.RoleFarmer,
			Time:    "2d ago",
			Title:   "Best organic pesticide for Aphids?",
			Content: "Looking for a chemical-free solution for my vegetable garden.",
			Likes:   45,
			Replies: 8,
			Tag:     "Question",
			ExpertReply: &domain.ExpertReply{
				Author:  "Dr. K. Singh",
				Role:    domain.RoleAgriExpert,
				Content: "Neem Oil is your best bet. Mix 5ml Neem Oil + 2ml liquid soap in 1L water. Spray at sunset.",
			},
		},
		{
			ID:      5,
			Author:  "Emily Chen",
			Role:    domain.RoleUser,
			Time:    "3d ago",
			Title:   "Succcess! Tomato Blight Cured",
			Content: "Just wanted to thank the community. The copper fungicide treatment recommended here saved my entire crop!",
			Likes:   156,
			Replies: 20,
			Tag:     "Success Story",
		},
	}
}
