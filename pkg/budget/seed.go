package budget

// SeedBudgets is the demo dataset loaded for a user the first time budgets are listed.
func SeedBudgets() []Budget {
	return []Budget{
		{
			Id: "ORC001",
			Client: Client{
				Name:    "Empresa XYZ Inc",
				Email:   "contato@empresaxyz.com.br",
				Phone:   "(11) 3456-7890",
				Address: "Av. Paulista, 1000 - São Paulo, SP",
			},
			Value:        "R$ 22.500,00",
			IssueDate:    "10/03/2024",
			ExpiryDate:   "10/04/2024",
			Status:       StatusPending,
			PaymentTerms: "Boleto bancário - 30/60/90 dias",
			Items: []Item{
				{Id: 1, Name: "Consultoria financeira", Quantity: 1, UnitPrice: "R$ 15.000,00", Total: "R$ 15.000,00"},
				{Id: 2, Name: "Implantação de sistema", Quantity: 3, UnitPrice: "R$ 2.500,00", Total: "R$ 7.500,00"},
			},
			History: []HistoryEvent{
				{Timestamp: "10/03/2024 09:15", Event: "Orçamento criado", Actor: "Carlos Mendes"},
				{Timestamp: "11/03/2024 14:30", Event: "Orçamento enviado ao cliente", Actor: "Carlos Mendes"},
			},
			Attachments: []Attachment{
				{Name: "proposta_comercial.pdf", Size: "1.2 MB"},
			},
		},
		{
			Id: "ORC002",
			Client: Client{
				Name:    "Pedro Almeida",
				Email:   "pedro.almeida@email.com",
				Phone:   "(21) 98765-4321",
				Address: "Rua das Laranjeiras, 250 - Rio de Janeiro, RJ",
			},
			Value:        "R$ 7.800,00",
			IssueDate:    "05/03/2024",
			ExpiryDate:   "05/04/2024",
			Status:       StatusApproved,
			PaymentTerms: "Cartão de crédito - 12x",
			Items: []Item{
				{Id: 1, Name: "Planejamento financeiro pessoal", Quantity: 1, UnitPrice: "R$ 7.800,00", Total: "R$ 7.800,00"},
			},
			History: []HistoryEvent{
				{Timestamp: "05/03/2024 10:00", Event: "Orçamento criado", Actor: "Ana Souza"},
				{Timestamp: "08/03/2024 16:45", Event: "Orçamento aprovado", Actor: "Pedro Almeida"},
			},
		},
		{
			Id: "ORC003",
			Client: Client{
				Name:    "Comércio Bom Preço Ltda",
				Email:   "financeiro@bompreco.com.br",
				Phone:   "(31) 3222-1100",
				Address: "Rua da Bahia, 1500 - Belo Horizonte, MG",
			},
			Value:        "R$ 45.000,00",
			IssueDate:    "20/02/2024",
			ExpiryDate:   "20/03/2024",
			Status:       StatusRejected,
			PaymentTerms: "Transferência bancária - à vista",
			Items: []Item{
				{Id: 1, Name: "Reestruturação de dívidas", Quantity: 1, UnitPrice: "R$ 30.000,00", Total: "R$ 30.000,00"},
				{Id: 2, Name: "Treinamento de equipe", Quantity: 5, UnitPrice: "R$ 3.000,00", Total: "R$ 15.000,00"},
			},
			History: []HistoryEvent{
				{Timestamp: "20/02/2024 11:20", Event: "Orçamento criado", Actor: "Carlos Mendes"},
				{Timestamp: "01/03/2024 09:00", Event: "Orçamento rejeitado", Actor: "Comércio Bom Preço Ltda"},
			},
			Attachments: []Attachment{
				{Name: "escopo_detalhado.pdf", Size: "860 KB"},
				{Name: "cronograma.xlsx", Size: "48 KB"},
			},
		},
		{
			Id: "ORC004",
			Client: Client{
				Name:    "Mariana Costa",
				Email:   "mariana.costa@email.com",
				Phone:   "(41) 99123-4567",
				Address: "Rua XV de Novembro, 700 - Curitiba, PR",
			},
			Value:        "R$ 3.200,00",
			IssueDate:    "15/01/2024",
			ExpiryDate:   "15/02/2024",
			Status:       StatusExpired,
			PaymentTerms: "PIX - à vista",
			Items: []Item{
				{Id: 1, Name: "Análise de crédito", Quantity: 2, UnitPrice: "R$ 1.600,00", Total: "R$ 3.200,00"},
			},
			History: []HistoryEvent{
				{Timestamp: "15/01/2024 08:40", Event: "Orçamento criado", Actor: "Ana Souza"},
			},
		},
		{
			Id: "ORC005",
			Client: Client{
				Name:    "Tech Solutions S.A.",
				Email:   "compras@techsolutions.com.br",
				Phone:   "(11) 4002-8922",
				Address: "Rua Funchal, 418 - São Paulo, SP",
			},
			Value:        "R$ 12.350,50",
			IssueDate:    "18/03/2024",
			ExpiryDate:   "18/04/2024",
			Status:       StatusPending,
			PaymentTerms: "Boleto bancário - 30 dias",
			Items: []Item{
				{Id: 1, Name: "Auditoria contábil", Quantity: 1, UnitPrice: "R$ 9.850,50", Total: "R$ 9.850,50"},
				{Id: 2, Name: "Relatório gerencial", Quantity: 1, UnitPrice: "R$ 2.500,00", Total: "R$ 2.500,00"},
			},
			History: []HistoryEvent{
				{Timestamp: "18/03/2024 13:05", Event: "Orçamento criado", Actor: "Carlos Mendes"},
			},
		},
	}
}
