package provision

import (
	"time"

	"github.com/partnerbi/bibot/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// d parses a decimal literal; the dataset below is hand-maintained so a
// malformed value should fail loudly at startup.
func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func auditDate(year, month, day int) *time.Time {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}

// DefaultDataset returns the partner seed records shipped with the bot.
// It covers every partner type and risk level so dashboards and report
// templates have representative data straight after a deploy.
func DefaultDataset() []SeedPartner {
	return []SeedPartner{
		{
			Partner: partner.Partner{
				INN:           "7707083893",
				LegalName:     "ПАО «Сбербанк России»",
				TradeName:     "Sber",
				Type:          partner.PartnerTypeStrategic,
				Category:      "Финансовые услуги",
				Email:         "partners@sberbank.ru",
				Phone:         "+7 495 500-55-50",
				CEOName:       "Герман Греф",
				Website:       "https://www.sberbank.ru",
				Addresses:     partner.AddressList{"117312, г. Москва, ул. Вавилова, д. 19"},
				Revenue2023:   d("4152000000000.00"),
				Revenue2022:   d("3680000000000.00"),
				Profit2023:    d("1508000000000.00"),
				FoundingYear:  1841,
				EmployeeCount: 210000,
				IndustryCode:  "64",
				OKVEDCode:     "64.19",
				Rating:        d("4.80"),
				RiskLevel:     partner.RiskLevelLow,
				PaymentTerms:  "15 дней",
				LastAuditDate: auditDate(2024, 3, 15),
			},
			Turnovers: []partner.Turnover{
				{PartnerINN: "7707083893", Year: 2023, Quarter: 4, Revenue: d("1120000000000.00"), Profit: d("402000000000.00"), TransactionCount: 1840, AverageTransaction: d("608695652.17")},
				{PartnerINN: "7707083893", Year: 2023, Quarter: 3, Revenue: d("1058000000000.00"), Profit: d("388000000000.00"), TransactionCount: 1760, AverageTransaction: d("601136363.64")},
				{PartnerINN: "7707083893", Year: 2023, Quarter: 2, Revenue: d("996000000000.00"), Profit: d("365000000000.00"), TransactionCount: 1690, AverageTransaction: d("589349112.43")},
			},
		},
		{
			Partner: partner.Partner{
				INN:           "7736050003",
				LegalName:     "ПАО «Газпром»",
				TradeName:     "Gazprom",
				Type:          partner.PartnerTypeVIP,
				Category:      "Энергетика",
				Email:         "gazprom@gazprom.ru",
				Phone:         "+7 812 413-73-33",
				CEOName:       "Алексей Миллер",
				Website:       "https://www.gazprom.ru",
				Addresses:     partner.AddressList{"197229, г. Санкт-Петербург, пр-кт Лахтинский, д. 2"},
				Revenue2023:   d("8542000000000.00"),
				Revenue2022:   d("11674000000000.00"),
				Profit2023:    d("695000000000.00"),
				FoundingYear:  1989,
				EmployeeCount: 498000,
				IndustryCode:  "06",
				OKVEDCode:     "06.20",
				Rating:        d("4.50"),
				RiskLevel:     partner.RiskLevelMedium,
				PaymentTerms:  "30 дней",
				LastAuditDate: auditDate(2024, 1, 20),
			},
			Turnovers: []partner.Turnover{
				{PartnerINN: "7736050003", Year: 2023, Quarter: 4, Revenue: d("2280000000000.00"), Profit: d("182000000000.00"), TransactionCount: 320, AverageTransaction: d("7125000000.00")},
				{PartnerINN: "7736050003", Year: 2023, Quarter: 3, Revenue: d("2105000000000.00"), Profit: d("175000000000.00"), TransactionCount: 295, AverageTransaction: d("7135593220.34")},
			},
		},
		{
			Partner: partner.Partner{
				INN:           "7703270067",
				LegalName:     "ООО «Яндекс»",
				TradeName:     "Yandex",
				Type:          partner.PartnerTypeCurrent,
				Category:      "Информационные технологии",
				Competitor:    "VK",
				Email:         "pr@yandex-team.ru",
				Phone:         "+7 495 739-70-00",
				CEOName:       "Артем Савиновский",
				Website:       "https://yandex.ru",
				Addresses:     partner.AddressList{"119021, г. Москва, ул. Льва Толстого, д. 16"},
				Revenue2023:   d("800000000000.00"),
				Revenue2022:   d("521000000000.00"),
				Profit2023:    d("21300000000.00"),
				FoundingYear:  2000,
				EmployeeCount: 26000,
				IndustryCode:  "62",
				OKVEDCode:     "62.01",
				Rating:        d("4.60"),
				RiskLevel:     partner.RiskLevelLow,
				PaymentTerms:  "20 дней",
				LastAuditDate: auditDate(2023, 11, 8),
			},
			Turnovers: []partner.Turnover{
				{PartnerINN: "7703270067", Year: 2023, Quarter: 4, Revenue: d("229000000000.00"), Profit: d("6400000000.00"), TransactionCount: 4120, AverageTransaction: d("55582524.27")},
				{PartnerINN: "7703270067", Year: 2023, Quarter: 3, Revenue: d("204000000000.00"), Profit: d("5900000000.00"), TransactionCount: 3980, AverageTransaction: d("51256281.41")},
			},
		},
		{
			Partner: partner.Partner{
				INN:           "5047041982",
				LegalName:     "ООО «Северные Технологии»",
				TradeName:     "NorthTech",
				Type:          partner.PartnerTypePotential,
				Category:      "Промышленное оборудование",
				Email:         "sales@northtech.example",
				Phone:         "+7 495 123-45-67",
				CEOName:       "Ирина Волкова",
				CFOName:       "Павел Семенов",
				Website:       "https://northtech.example",
				Addresses:     partner.AddressList{"141400, Московская обл., г. Химки, ул. Ленинградская, д. 29"},
				Revenue2023:   d("1250000000.00"),
				Revenue2022:   d("980000000.00"),
				Profit2023:    d("145000000.00"),
				FoundingYear:  2011,
				EmployeeCount: 340,
				IndustryCode:  "28",
				OKVEDCode:     "28.99",
				Rating:        d("3.90"),
				RiskLevel:     partner.RiskLevelMedium,
				PaymentTerms:  "45 дней",
			},
			Turnovers: []partner.Turnover{
				{PartnerINN: "5047041982", Year: 2023, Quarter: 4, Revenue: d("380000000.00"), Profit: d("46000000.00"), TransactionCount: 56, AverageTransaction: d("6785714.29")},
				{PartnerINN: "5047041982", Year: 2023, Quarter: 3, Revenue: d("310000000.00"), Profit: d("38000000.00"), TransactionCount: 48, AverageTransaction: d("6458333.33")},
				{PartnerINN: "5047041982", Year: 2023, Quarter: 2, Revenue: d("295000000.00"), Profit: d("33000000.00"), TransactionCount: 47, AverageTransaction: d("6276595.74")},
				{PartnerINN: "5047041982", Year: 2023, Quarter: 1, Revenue: d("265000000.00"), Profit: d("28000000.00"), TransactionCount: 41, AverageTransaction: d("6463414.63")},
			},
		},
		{
			Partner: partner.Partner{
				INN:           "6316031581",
				LegalName:     "АО «Волга Логистик»",
				TradeName:     "VolgaLog",
				Type:          partner.PartnerTypeCurrent,
				Category:      "Логистика",
				Competitor:    "Деловые Линии",
				Email:         "office@volgalog.example",
				Phone:         "+7 846 205-50-10",
				CEOName:       "Дмитрий Орлов",
				Addresses:     partner.AddressList{"443099, г. Самара, ул. Куйбышева, д. 92", "443052, г. Самара, Заводское шоссе, д. 1"},
				Revenue2023:   d("640000000.00"),
				Revenue2022:   d("587000000.00"),
				Profit2023:    d("52000000.00"),
				FoundingYear:  2005,
				EmployeeCount: 820,
				IndustryCode:  "49",
				OKVEDCode:     "49.41",
				Rating:        d("4.10"),
				RiskLevel:     partner.RiskLevelLow,
				PaymentTerms:  "30 дней",
				LastAuditDate: auditDate(2024, 2, 2),
			},
			Turnovers: []partner.Turnover{
				{PartnerINN: "6316031581", Year: 2023, Quarter: 4, Revenue: d("172000000.00"), Profit: d("15000000.00"), TransactionCount: 210, AverageTransaction: d("819047.62")},
				{PartnerINN: "6316031581", Year: 2023, Quarter: 3, Revenue: d("168000000.00"), Profit: d("14000000.00"), TransactionCount: 204, AverageTransaction: d("823529.41")},
			},
		},
		{
			Partner: partner.Partner{
				INN:           "2309085638",
				LegalName:     "ООО «Кубань Агро Трейд»",
				Type:          partner.PartnerTypeBlocked,
				Category:      "Сельское хозяйство",
				Email:         "info@kubanagro.example",
				Phone:         "+7 861 210-98-76",
				CEOName:       "Сергей Ковалев",
				Addresses:     partner.AddressList{"350000, г. Краснодар, ул. Красная, д. 111"},
				Revenue2023:   d("89000000.00"),
				Revenue2022:   d("134000000.00"),
				Profit2023:    d("-12000000.00"),
				FoundingYear:  2016,
				EmployeeCount: 95,
				IndustryCode:  "01",
				OKVEDCode:     "01.11",
				Rating:        d("1.70"),
				RiskLevel:     partner.RiskLevelCritical,
				PaymentTerms:  "Предоплата 100%",
				LastAuditDate: auditDate(2023, 9, 30),
			},
			Turnovers: []partner.Turnover{
				{PartnerINN: "2309085638", Year: 2023, Quarter: 4, Revenue: d("14000000.00"), Profit: d("-5200000.00"), TransactionCount: 18, AverageTransaction: d("777777.78")},
			},
		},
	}
}
