package fixtures

import (
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

func products(now time.Time) []domain.Product {
	return []domain.Product{
		{
			ID:            "prod1",
			Slug:          "wireless-noise-cancelling-headphones",
			Name:          "Wireless Noise-Cancelling Headphones",
			Description:   "Immersive sound quality with industry-leading noise cancellation. Long battery life.",
			Price:         price("249.99"),
			OriginalPrice: pricePtr("299.99"),
			Category:      "Electronics",
			Brand:         "SoundWave",
			Rating:        4.8,
			ReviewsCount:  1250,
			StockStatus:   domain.InStock,
			Images: []string{
				"https://picsum.photos/seed/headphones1/600/600",
				"https://picsum.photos/seed/headphones2/600/600",
				"https://picsum.photos/seed/headphones3/600/600",
			},
			Variants: &domain.ProductVariants{
				Colors: []string{"Black", "Silver", "Midnight Blue"},
			},
			IsFeatured:  true,
			IsOnSale:    true,
			SaleEndDate: saleEnd(now, 3),
			CreatedAt:   createdAt(0),
		},
		{
			ID:           "prod2",
			Slug:         "ultra-hd-smart-tv-55-inch",
			Name:         "Ultra HD Smart TV 55 Inch",
			Description:  "Stunning 4K picture quality with smart features and voice control.",
			Price:        price("599.00"),
			Category:     "Electronics",
			Brand:        "VisionX",
			Rating:       4.6,
			ReviewsCount: 875,
			StockStatus:  domain.InStock,
			Images: []string{
				"https://picsum.photos/seed/tv1/600/600",
				"https://picsum.photos/seed/tv2/600/600",
			},
			CreatedAt: createdAt(1),
		},
		{
			ID:           "prod3",
			Slug:         "latest-gen-smartphone",
			Name:         "Latest Gen Smartphone",
			Description:  "Powerful performance, stunning display, and pro-grade camera system.",
			Price:        price("999.00"),
			Category:     "Electronics",
			Brand:        "TechCore",
			Rating:       4.9,
			ReviewsCount: 2100,
			StockStatus:  domain.InStock,
			Images: []string{
				"https://picsum.photos/seed/phone1/600/600",
				"https://picsum.photos/seed/phone2/600/600",
			},
			CreatedAt: createdAt(2),
		},
		{
			ID:           "prod4",
			Slug:         "lightweight-laptop-14-inch",
			Name:         "Lightweight Laptop 14 Inch",
			Description:  "Thin and light laptop perfect for productivity on the go. Fast SSD and long battery life.",
			Price:        price("749.50"),
			Category:     "Electronics",
			Brand:        "NovaPC",
			Rating:       4.5,
			ReviewsCount: 650,
			StockStatus:  domain.LowStock,
			Images: []string{
				"https://picsum.photos/seed/laptop1/600/600",
				"https://picsum.photos/seed/laptop2/600/600",
			},
			CreatedAt: createdAt(3),
		},
		{
			ID:           "prod5",
			Slug:         "smart-watch-fitness-tracker",
			Name:         "Smart Watch & Fitness Tracker",
			Description:  "Track your workouts, heart rate, and sleep patterns. Receive notifications on your wrist.",
			Price:        price("129.99"),
			Category:     "Electronics",
			Brand:        "FitLife",
			Rating:       4.3,
			ReviewsCount: 980,
			StockStatus:  domain.InStock,
			Images: []string{
				"https://picsum.photos/seed/watch1/600/600",
				"https://picsum.photos/seed/watch2/600/600",
			},
			Variants: &domain.ProductVariants{
				Colors: []string{"Black", "Rose Gold", "Silver"},
			},
			IsFeatured: true,
			CreatedAt:  createdAt(4),
		},
		{
			ID:           "prod6",
			Slug:         "mens-classic-denim-jacket",
			Name:         "Men's Classic Denim Jacket",
			Description:  "Timeless style, perfect for layering. Made with durable denim.",
			Price:        price("79.95"),
			Category:     "Fashion",
			Brand:        "Urban Threads",
			Rating:       4.7,
			ReviewsCount: 530,
			StockStatus:  domain.InStock,
			Images: []string{
				"https://picsum.photos/seed/jacket1/600/600",
				"https://picsum.photos/seed/jacket2/600/600",
			},
			CreatedAt: createdAt(5),
		},
		{
			ID:           "prod7",
			Slug:         "womens-floral-print-maxi-dress",
			Name:         "Women's Floral Print Maxi Dress",
			Description:  "Elegant and flowy maxi dress with a vibrant floral pattern.",
			Price:        price("64.00"),
			Category:     "Fashion",
			Brand:        "Boho Chic",
			Rating:       4.5,
			ReviewsCount: 410,
			StockStatus:  domain.InStock,
			Images: []string{
				"https://picsum.photos/seed/dress1/600/600",
				"https://picsum.photos/seed/dress2/600/600",
			},
			CreatedAt: createdAt(6),
		},
		{
			ID:            "prod8",
			Slug:          "unisex-canvas-sneakers",
			Name:          "Unisex Canvas Sneakers",
			Description:   "Comfortable and versatile sneakers for everyday wear.",
			Price:         price("49.99"),
			OriginalPrice: pricePtr("59.99"),
			Category:      "Fashion",
			Brand:         "SoleMate",
			Rating:        4.4,
			ReviewsCount:  720,
			StockStatus:   domain.InStock,
			Images: []string{
				"https://picsum.photos/seed/sneaker1/600/600",
				"https://picsum.photos/seed/sneaker2/600/600",
			},
			Variants: &domain.ProductVariants{
				Colors: []string{"White", "Black", "Navy"},
				Sizes:  []string{"6", "7", "8", "9", "10", "11"},
			},
			IsOnSale:    true,
			SaleEndDate: saleEnd(now, 1),
			CreatedAt:   createdAt(7),
		},
		{
			ID:           "prod9",
			Slug:         "leather-crossbody-bag",
			Name:         "Leather Crossbody Bag",
			Description:  "Stylish and practical crossbody bag made from genuine leather.",
			Price:        price("119.00"),
			Category:     "Fashion",
			Brand:        "Artisan Bags",
			Rating:       4.8,
			ReviewsCount: 350,
			StockStatus:  domain.LowStock,
			Images: []string{
				"https://picsum.photos/seed/bag1/600/600",
				"https://picsum.photos/seed/bag2/600/600",
			},
			Variants: &domain.ProductVariants{
				Colors: []string{"Tan", "Black", "Brown"},
			},
			IsFeatured: true,
			CreatedAt:  createdAt(8),
		},
		{
			ID:           "prod10",
			Slug:         "cashmere-blend-scarf",
			Name:         "Cashmere Blend Scarf",
			Description:  "Soft and luxurious scarf to keep you warm in style.",
			Price:        price("89.50"),
			Category:     "Fashion",
			Brand:        "Cozy Knits",
			Rating:       4.9,
			ReviewsCount: 280,
			StockStatus:  domain.InStock,
			Images: []string{
				"https://picsum.photos/seed/scarf1/600/600",
				"https://picsum.photos/seed/scarf2/600/600",
			},
			CreatedAt: createdAt(9),
		},
		{
			ID:           "prod11",
			Slug:         "robot-vacuum-cleaner",
			Name:         "Robot Vacuum Cleaner",
			Description:  "Smart cleaning for your home with mapping technology and app control.",
			Price:        price("349.00"),
			Category:     "Home Goods",
			Brand:        "CleanBot",
			Rating:       4.6,
			ReviewsCount: 1100,
			StockStatus:  domain.InStock,
			Images: []string{
				"https://picsum.photos/seed/vacuum1/600/600",
				"https://picsum.photos/seed/vacuum2/600/600",
			},
			CreatedAt: createdAt(10),
		},
		{
			ID:           "prod12",
			Slug:         "espresso-machine",
			Name:         "Espresso Machine",
			Description:  "Brew barista-quality espresso at home with this easy-to-use machine.",
			Price:        price("199.99"),
			Category:     "Home Goods",
			Brand:        "CafeMaster",
			Rating:       4.7,
			ReviewsCount: 780,
			StockStatus:  domain.InStock,
			Images: []string{
				"https://picsum.photos/seed/espresso1/600/600",
				"https://picsum.photos/seed/espresso2/600/600",
			},
			IsFeatured: true,
			CreatedAt:  createdAt(11),
		},
		{
			ID:           "prod13",
			Slug:         "air-purifier-hepa-filter",
			Name:         "Air Purifier with HEPA Filter",
			Description:  "Removes allergens, dust, and pollutants for cleaner air.",
			Price:        price("129.50"),
			Category:     "Home Goods",
			Brand:        "PureAir",
			Rating:       4.5,
			ReviewsCount: 550,
			StockStatus:  domain.OutOfStock,
			Images: []string{
				"https://picsum.photos/seed/purifier1/600/600",
				"https://picsum.photos/seed/purifier2/600/600",
			},
			CreatedAt: createdAt(12),
		},
		{
			ID:           "prod14",
			Slug:         "memory-foam-pillow-set",
			Name:         "Memory Foam Pillow Set (2-Pack)",
			Description:  "Ergonomic pillows for comfortable and supportive sleep.",
			Price:        price("59.99"),
			Category:     "Home Goods",
			Brand:        "DreamWell",
			Rating:       4.4,
			ReviewsCount: 920,
			StockStatus:  domain.InStock,
			Images: []string{
				"https://picsum.photos/seed/pillow1/600/600",
				"https://picsum.photos/seed/pillow2/600/600",
			},
			CreatedAt: createdAt(13),
		},
		{
			ID:           "prod15",
			Slug:         "yoga-mat-eco-friendly",
			Name:         "Yoga Mat - Eco Friendly",
			Description:  "Non-slip, cushioned mat made from sustainable materials.",
			Price:        price("39.95"),
			Category:     "Sports",
			Brand:        "ZenFlow",
			Rating:       4.8,
			ReviewsCount: 680,
			StockStatus:  domain.InStock,
			Images: []string{
				"https://picsum.photos/seed/yogamat1/600/600",
				"https://picsum.photos/seed/yogamat2/600/600",
			},
			CreatedAt: createdAt(14),
		},
		{
			ID:           "prod16",
			Slug:         "adjustable-dumbbell-set",
			Name:         "Adjustable Dumbbell Set",
			Description:  "Space-saving design allows you to change weights easily.",
			Price:        price("299.00"),
			Category:     "Sports",
			Brand:        "IronFlex",
			Rating:       4.7,
			ReviewsCount: 450,
			StockStatus:  domain.LowStock,
			Images: []string{
				"https://picsum.photos/seed/dumbbell1/600/600",
				"https://picsum.photos/seed/dumbbell2/600/600",
			},
			CreatedAt: createdAt(15),
		},
		{
			ID:           "prod17",
			Slug:         "running-shoes-lightweight",
			Name:         "Running Shoes - Lightweight",
			Description:  "Breathable and cushioned shoes for optimal running performance.",
			Price:        price("109.99"),
			Category:     "Sports",
			Brand:        "StrideFast",
			Rating:       4.6,
			ReviewsCount: 810,
			StockStatus:  domain.InStock,
			Images: []string{
				"https://picsum.photos/seed/runningshoe1/600/600",
				"https://picsum.photos/seed/runningshoe2/600/600",
			},
			Variants: &domain.ProductVariants{
				Colors: []string{"Neon Green", "Black/White", "Blue"},
				Sizes:  []string{"7", "8", "9", "10", "11", "12"},
			},
			IsFeatured: true,
			CreatedAt:  createdAt(16),
		},
		{
			ID:           "prod18",
			Slug:         "bestselling-mystery-novel",
			Name:         "Bestselling Mystery Novel",
			Description:  "A gripping thriller that will keep you on the edge of your seat.",
			Price:        price("14.99"),
			Category:     "Books",
			Brand:        "PageTurner Publishing",
			Rating:       4.9,
			ReviewsCount: 1500,
			StockStatus:  domain.InStock,
			Images: []string{
				"https://picsum.photos/seed/book1/600/600",
				"https://picsum.photos/seed/book2/600/600",
			},
			CreatedAt: createdAt(17),
		},
		{
			ID:           "prod19",
			Slug:         "inspirational-self-help-book",
			Name:         "Inspirational Self-Help Book",
			Description:  "Unlock your potential and live a more fulfilling life.",
			Price:        price("18.50"),
			Category:     "Books",
			Brand:        "Mindful Press",
			Rating:       4.7,
			ReviewsCount: 950,
			StockStatus:  domain.InStock,
			Images: []string{
				"https://picsum.photos/seed/selfhelp1/600/600",
				"https://picsum.photos/seed/selfhelp2/600/600",
			},
			CreatedAt: createdAt(18),
		},
		{
			ID:            "prod20",
			Slug:          "organic-facial-serum",
			Name:          "Organic Facial Serum",
			Description:   "Hydrating and revitalizing serum with natural ingredients.",
			Price:         price("45.00"),
			OriginalPrice: pricePtr("55.00"),
			Category:      "Beauty",
			Brand:         "GlowNaturally",
			Rating:        4.8,
			ReviewsCount:  420,
			StockStatus:   domain.InStock,
			Images: []string{
				"https://picsum.photos/seed/serum1/600/600",
				"https://picsum.photos/seed/serum2/600/600",
			},
			IsOnSale:    true,
			SaleEndDate: saleEnd(now, 5),
			CreatedAt:   createdAt(19),
		},
	}
}
