package catalog

import "github.com/creatorstack/storefront/internal/domain"

// SeedProducts returns the static sample catalog. Seed records are read-only:
// they are never deletable and never appear in a creator's own-products view.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "prod_1",
			Title:       "Complete React Mastery Course",
			Description: "Master React from basics to advanced concepts. Build real-world projects and learn best practices used by top companies.",
			Price:       99.99,
			ImageURL:    "https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=500&h=300&fit=crop",
			CreatorID:   "creator_1",
			CreatedAt:   "2024-03-01T09:00:00Z",
			Category:    domain.CategoryCourse,
			Featured:    true,
		},
		{
			ID:          "prod_2",
			Title:       "Advanced JavaScript Patterns",
			Description: "Deep dive into JavaScript design patterns, closures, and advanced concepts that will make you a better developer.",
			Price:       79.99,
			ImageURL:    "https://images.unsplash.com/photo-1627398242454-45a1465c2479?w=500&h=300&fit=crop",
			CreatorID:   "creator_1",
			CreatedAt:   "2024-03-01T09:00:00Z",
			Category:    domain.CategoryVideo,
			Featured:    true,
		},
		{
			ID:          "prod_3",
			Title:       "UI/UX Design Fundamentals",
			Description: "Learn the principles of great design. Create beautiful, user-friendly interfaces that convert.",
			Price:       59.99,
			ImageURL:    "https://images.unsplash.com/photo-1561070791-2526d30994b5?w=500&h=300&fit=crop",
			CreatorID:   "creator_2",
			CreatedAt:   "2024-03-01T09:00:00Z",
			Category:    domain.CategoryCourse,
			Featured:    false,
		},
		{
			ID:          "prod_4",
			Title:       "The Complete Guide to Node.js",
			Description: "Build scalable backend applications with Node.js. Learn Express, databases, authentication, and deployment.",
			Price:       89.99,
			ImageURL:    "https://images.unsplash.com/photo-1558494949-ef010cbdcc31?w=500&h=300&fit=crop",
			CreatorID:   "creator_1",
			CreatedAt:   "2024-03-01T09:00:00Z",
			Category:    domain.CategoryEbook,
			Featured:    false,
		},
		{
			ID:          "prod_5",
			Title:       "Modern CSS Grid & Flexbox",
			Description: "Master modern CSS layout techniques. Build responsive designs that work on all devices.",
			Price:       49.99,
			ImageURL:    "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=500&h=300&fit=crop",
			CreatorID:   "creator_3",
			CreatedAt:   "2024-03-01T09:00:00Z",
			Category:    domain.CategoryVideo,
			Featured:    false,
		},
		{
			ID:          "prod_6",
			Title:       "Landing Page Templates Pack",
			Description: "Professional landing page templates for SaaS, e-commerce, and service businesses. Ready to customize.",
			Price:       39.99,
			ImageURL:    "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=500&h=300&fit=crop",
			CreatorID:   "creator_2",
			CreatedAt:   "2024-03-01T09:00:00Z",
			Category:    domain.CategoryTemplate,
			Featured:    false,
		},
	}
}
