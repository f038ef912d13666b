package queries

const (
	allocationJoin = `
SELECT al.id, al.cliente_id, al.ativo_id, al.quantidade,
       c.id, c.nome, c.email, c.status,
       a.id, a.nome, a.valor_atual
  FROM alocacoes al
  JOIN clientes c ON c.id = al.cliente_id
  JOIN ativos a ON a.id = al.ativo_id`

	ListAllocations = allocationJoin + `
 ORDER BY al.id`

	GetAllocation = allocationJoin + `
 WHERE al.id = $1`

	InsertAllocation = `
INSERT INTO alocacoes (cliente_id, ativo_id, quantidade)
VALUES ($1, $2, $3)
RETURNING id, cliente_id, ativo_id, quantidade`

	UpdateAllocationQuantity = `
UPDATE alocacoes
   SET quantidade = $2
 WHERE id = $1
RETURNING id, cliente_id, ativo_id, quantidade`

	DeleteAllocation = `DELETE FROM alocacoes WHERE id = $1`
)
