package catalog

// Sample returns the built-in demo catalog. Embeddings are left empty and
// generated at seed time by the configured embedding provider.
func Sample() []Product {
	return []Product{
		{
			Id:          "phone_001",
			Name:        "iPhone 15 Pro",
			Category:    CategoryPhone,
			Brand:       "Apple",
			Price:       999,
			Description: "Latest iPhone with A17 Pro chip, titanium design, and advanced camera system",
			Specs: map[string]string{
				"screen_size": "6.1 inches",
				"storage":     "128GB",
				"ram":         "8GB",
				"processor":   "A17 Pro",
				"camera":      "48MP main + 12MP ultra-wide + 12MP telephoto",
				"battery":     "3274mAh",
				"os":          "iOS 17",
			},
			Features: []string{"5G", "Face ID", "Wireless charging", "Water resistant", "Titanium frame"},
			Tags:     []string{"premium", "camera", "gaming", "business", "photography"},
		},
		{
			Id:          "phone_002",
			Name:        "Samsung Galaxy S24 Ultra",
			Category:    CategoryPhone,
			Brand:       "Samsung",
			Price:       1299,
			Description: "Premium Android flagship with S Pen, advanced AI features, and exceptional camera",
			Specs: map[string]string{
				"screen_size": "6.8 inches",
				"storage":     "256GB",
				"ram":         "12GB",
				"processor":   "Snapdragon 8 Gen 3",
				"camera":      "200MP main + 12MP ultra-wide + 50MP telephoto + 10MP telephoto",
				"battery":     "5000mAh",
				"os":          "Android 14",
			},
			Features: []string{"5G", "S Pen", "Wireless charging", "Water resistant", "AI features"},
			Tags:     []string{"premium", "camera", "productivity", "business", "creativity"},
		},
		{
			Id:          "phone_003",
			Name:        "Google Pixel 8",
			Category:    CategoryPhone,
			Brand:       "Google",
			Price:       699,
			Description: "AI-powered smartphone with exceptional camera and clean Android experience",
			Specs: map[string]string{
				"screen_size": "6.2 inches",
				"storage":     "128GB",
				"ram":         "8GB",
				"processor":   "Google Tensor G3",
				"camera":      "50MP main + 12MP ultra-wide",
				"battery":     "4575mAh",
				"os":          "Android 14",
			},
			Features: []string{"5G", "AI camera", "Wireless charging", "Water resistant", "Google Assistant"},
			Tags:     []string{"camera", "AI", "mid-range", "photography", "clean UI"},
		},
		{
			Id:          "phone_004",
			Name:        "OnePlus 12",
			Category:    CategoryPhone,
			Brand:       "OnePlus",
			Price:       799,
			Description: "Fast performance with Hasselblad camera system and rapid charging",
			Specs: map[string]string{
				"screen_size": "6.82 inches",
				"storage":     "256GB",
				"ram":         "16GB",
				"processor":   "Snapdragon 8 Gen 3",
				"camera":      "50MP main + 48MP ultra-wide + 64MP telephoto",
				"battery":     "5400mAh",
				"os":          "Android 14",
			},
			Features: []string{"5G", "100W charging", "Wireless charging", "Water resistant", "Hasselblad camera"},
			Tags:     []string{"performance", "fast charging", "camera", "gaming", "value"},
		},
		{
			Id:          "laptop_001",
			Name:        "MacBook Pro 14-inch",
			Category:    CategoryLaptop,
			Brand:       "Apple",
			Price:       1999,
			Description: "Professional laptop with M3 Pro chip, perfect for creative work and development",
			Specs: map[string]string{
				"screen_size": "14.2 inches",
				"storage":     "512GB SSD",
				"ram":         "18GB",
				"processor":   "M3 Pro",
				"gpu":         "Integrated",
				"battery":     "Up to 22 hours",
				"os":          "macOS Sonoma",
			},
			Features: []string{"Retina display", "Touch Bar", "Thunderbolt 4", "Backlit keyboard", "Force Touch trackpad"},
			Tags:     []string{"premium", "creative", "development", "business", "portable"},
		},
		{
			Id:          "laptop_002",
			Name:        "Dell XPS 13 Plus",
			Category:    CategoryLaptop,
			Brand:       "Dell",
			Price:       1499,
			Description: "Ultra-slim premium Windows laptop with excellent performance and design",
			Specs: map[string]string{
				"screen_size": "13.4 inches",
				"storage":     "512GB SSD",
				"ram":         "16GB",
				"processor":   "Intel Core i7-1360P",
				"gpu":         "Intel Iris Xe",
				"battery":     "Up to 12 hours",
				"os":          "Windows 11",
			},
			Features: []string{"InfinityEdge display", "Backlit keyboard", "Thunderbolt 4", "Fingerprint reader", "Premium build"},
			Tags:     []string{"premium", "business", "portable", "design", "professional"},
		},
		{
			Id:          "laptop_003",
			Name:        "Lenovo ThinkPad X1 Carbon",
			Category:    CategoryLaptop,
			Brand:       "Lenovo",
			Price:       1699,
			Description: "Business-focused laptop with legendary ThinkPad reliability and security",
			Specs: map[string]string{
				"screen_size": "14 inches",
				"storage":     "1TB SSD",
				"ram":         "16GB",
				"processor":   "Intel Core i7-1355U",
				"gpu":         "Intel Iris Xe",
				"battery":     "Up to 15 hours",
				"os":          "Windows 11 Pro",
			},
			Features: []string{"ThinkPad keyboard", "Fingerprint reader", "IR camera", "Thunderbolt 4", "Military-grade durability"},
			Tags:     []string{"business", "reliable", "security", "professional", "durable"},
		},
		{
			Id:          "laptop_004",
			Name:        "ASUS ROG Zephyrus G14",
			Category:    CategoryLaptop,
			Brand:       "ASUS",
			Price:       1299,
			Description: "Gaming laptop with AMD Ryzen processor and dedicated graphics for gaming and content creation",
			Specs: map[string]string{
				"screen_size": "14 inches",
				"storage":     "512GB SSD",
				"ram":         "16GB",
				"processor":   "AMD Ryzen 7 7735HS",
				"gpu":         "NVIDIA RTX 4050",
				"battery":     "Up to 8 hours",
				"os":          "Windows 11",
			},
			Features: []string{"144Hz display", "RGB keyboard", "Gaming performance", "Anime Matrix", "Portable gaming"},
			Tags:     []string{"gaming", "performance", "content creation", "portable", "RGB"},
		},
		{
			Id:          "tablet_001",
			Name:        "iPad Pro 12.9-inch",
			Category:    CategoryTablet,
			Brand:       "Apple",
			Price:       1099,
			Description: "Professional tablet with M2 chip, perfect for creative work and productivity",
			Specs: map[string]string{
				"screen_size": "12.9 inches",
				"storage":     "128GB",
				"ram":         "8GB",
				"processor":   "M2",
				"camera":      "12MP wide + 10MP ultra-wide",
				"battery":     "Up to 10 hours",
				"os":          "iPadOS 17",
			},
			Features: []string{"Liquid Retina XDR display", "Apple Pencil support", "Magic Keyboard", "5G optional", "Face ID"},
			Tags:     []string{"premium", "creative", "productivity", "professional", "large screen"},
		},
		{
			Id:          "tablet_002",
			Name:        "Samsung Galaxy Tab S9 Ultra",
			Category:    CategoryTablet,
			Brand:       "Samsung",
			Price:       1199,
			Description: "Large Android tablet with S Pen and exceptional multimedia experience",
			Specs: map[string]string{
				"screen_size": "14.6 inches",
				"storage":     "256GB",
				"ram":         "12GB",
				"processor":   "Snapdragon 8 Gen 2",
				"camera":      "13MP + 8MP dual",
				"battery":     "11200mAh",
				"os":          "Android 13",
			},
			Features: []string{"AMOLED display", "S Pen included", "5G optional", "Multi-window", "DeX mode"},
			Tags:     []string{"large screen", "multimedia", "productivity", "S Pen", "entertainment"},
		},
		{
			Id:          "tablet_003",
			Name:        "Microsoft Surface Pro 9",
			Category:    CategoryTablet,
			Brand:       "Microsoft",
			Price:       999,
			Description: "2-in-1 tablet that transforms into a laptop with full Windows experience",
			Specs: map[string]string{
				"screen_size": "13 inches",
				"storage":     "256GB SSD",
				"ram":         "16GB",
				"processor":   "Intel Core i5-1235U",
				"camera":      "10MP rear + 5MP front",
				"battery":     "Up to 15.5 hours",
				"os":          "Windows 11",
			},
			Features: []string{"2-in-1 design", "Surface Pen", "Type Cover", "Kickstand", "Full Windows"},
			Tags:     []string{"2-in-1", "productivity", "business", "versatile", "Windows"},
		},
		{
			Id:          "tablet_004",
			Name:        "Amazon Fire HD 10",
			Category:    CategoryTablet,
			Brand:       "Amazon",
			Price:       149,
			Description: "Affordable tablet perfect for entertainment, reading, and basic tasks",
			Specs: map[string]string{
				"screen_size": "10.1 inches",
				"storage":     "32GB",
				"ram":         "3GB",
				"processor":   "Octa-core",
				"camera":      "5MP rear + 2MP front",
				"battery":     "Up to 12 hours",
				"os":          "Fire OS",
			},
			Features: []string{"HD display", "Alexa integration", "Expandable storage", "Kid-friendly", "Affordable"},
			Tags:     []string{"budget", "entertainment", "reading", "kids", "value"},
		},
	}
}
